package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/xavierca1/ligue-cursos/internal/entity"
	"github.com/xavierca1/ligue-cursos/internal/infra/http/middleware"
)

// FollowupLabel é o que entra no histórico no lugar do corpo da mensagem.
const FollowupLabel = "FOLLOWUP"

func NewFollowUpUseCase(
	leadRepo entity.LeadRepositoryInterface,
	interactionRepo entity.InteractionRepositoryInterface,
	gateway MessageGateway,
) *FollowUpUseCase {
	return &FollowUpUseCase{
		LeadRepo:        leadRepo,
		InteractionRepo: interactionRepo,
		Gateway:         gateway,
	}
}

// Execute roda UMA varredura de follow-up. Falha num candidato não derruba
// os demais: é logada, contada e a varredura segue. Só a busca da lista
// propaga erro.
func (uc *FollowUpUseCase) Execute(ctx context.Context) error {
	candidates, err := uc.LeadRepo.ListFollowupCandidates(ctx)
	if err != nil {
		middleware.RecordBotError("followup_query")
		return fmt.Errorf("falha ao buscar candidatos de follow-up: %w", err)
	}

	if len(candidates) == 0 {
		return nil
	}

	sentCount := 0
	for _, c := range candidates {
		if err := uc.sendOne(ctx, c); err != nil {
			middleware.RecordBotError("followup_send")
			log.Printf("⚠️ Follow-up falhou para %s: %v", c.Phone, err)
			continue
		}
		sentCount++
	}

	log.Printf("🔁 Varredura de follow-up: %d/%d enviados", sentCount, len(candidates))
	return nil
}

func (uc *FollowUpUseCase) sendOne(ctx context.Context, c *entity.FollowupCandidate) error {
	body := RenderTemplate(c.Message, FieldsFromResolution(&c.TemplateResolution))

	if err := uc.Gateway.SendText(ctx, c.Phone, body); err != nil {
		return fmt.Errorf("envio: %w", err)
	}

	interaction := entity.NewInteraction(c.Phone, FollowupLabel, entity.DirectionSent)
	if err := uc.InteractionRepo.Append(ctx, interaction); err != nil {
		return fmt.Errorf("registro: %w", err)
	}

	if err := uc.LeadRepo.UpdateEngagement(ctx, c.Phone, entity.Engagement{}); err != nil {
		return fmt.Errorf("last_contact: %w", err)
	}

	middleware.RecordFollowupSent()
	return nil
}
