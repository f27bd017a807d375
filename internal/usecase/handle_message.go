package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/xavierca1/ligue-cursos/internal/entity"
	"github.com/xavierca1/ligue-cursos/internal/infra/http/middleware"
)

type MessageInput struct {
	From string `json:"from"`
	Body string `json:"body"`
}

func NewHandleMessageUseCase(
	leadRepo entity.LeadRepositoryInterface,
	interactionRepo entity.InteractionRepositoryInterface,
	gateway MessageGateway,
	mailer AccessMailer,
) *HandleMessageUseCase {
	return &HandleMessageUseCase{
		LeadRepo:        leadRepo,
		InteractionRepo: interactionRepo,
		Gateway:         gateway,
		Mailer:          mailer,
	}
}

// Execute processa UMA mensagem recebida: resolve a trigger, renderiza a
// resposta, envia e registra a troca. Trigger desconhecida (ou corpo vazio)
// é ignorada em silêncio: nada enviado, nada registrado.
func (uc *HandleMessageUseCase) Execute(ctx context.Context, input MessageInput) error {
	phone := entity.NormalizePhone(input.From)
	trigger := strings.ToUpper(strings.TrimSpace(input.Body))

	if phone == "" || trigger == "" {
		middleware.RecordMessageIgnored()
		return nil
	}

	res, err := uc.LeadRepo.ResolveTrigger(ctx, phone, trigger)
	if errors.Is(err, ErrNoMatch) {
		middleware.RecordMessageIgnored()
		return nil
	}
	if err != nil {
		middleware.RecordBotError("resolve")
		return fmt.Errorf("falha ao resolver trigger %q: %w", trigger, err)
	}

	reply := RenderTemplate(res.Message, FieldsFromResolution(res))

	if err := uc.Gateway.SendText(ctx, phone, reply); err != nil {
		middleware.RecordBotError("send")
		return fmt.Errorf("falha ao enviar resposta para %s: %w", phone, err)
	}

	var courseID *int
	if id, ok := CourseID(trigger); ok {
		courseID = &id
	}

	received := entity.NewInteraction(phone, trigger, entity.DirectionReceived)
	received.Status = res.NextStatus
	received.Decision = res.NextDecision
	received.CourseID = courseID
	if err := uc.InteractionRepo.Append(ctx, received); err != nil {
		middleware.RecordBotError("log")
		return fmt.Errorf("falha ao registrar mensagem recebida: %w", err)
	}

	sent := entity.NewInteraction(phone, reply, entity.DirectionSent)
	sent.Status = res.NextStatus
	sent.Decision = res.NextDecision
	sent.CourseID = courseID
	if err := uc.InteractionRepo.Append(ctx, sent); err != nil {
		middleware.RecordBotError("log")
		return fmt.Errorf("falha ao registrar resposta enviada: %w", err)
	}

	// Status/decision do lead nunca podem ficar atrás do histórico
	eng := entity.Engagement{
		Status:   res.NextStatus,
		Decision: res.NextDecision,
		CourseID: courseID,
	}
	if err := uc.LeadRepo.UpdateEngagement(ctx, phone, eng); err != nil {
		middleware.RecordBotError("engagement")
		return fmt.Errorf("falha ao atualizar lead %s: %w", phone, err)
	}

	// Matrícula fechada: manda o acesso por email. Falha aqui não desfaz
	// nada: a mensagem já saiu.
	if res.NextDecision == "ENROLLED" && res.Email != "" && uc.Mailer != nil {
		if err := uc.Mailer.SendAccess(res.Email, res.FullName, res.CourseName, res.AccessLink); err != nil {
			log.Printf("⚠️ Email de acesso falhou para %s: %v", res.Email, err)
		}
	}

	log.Printf("✅ Trigger %s respondida para %s (status=%s)", trigger, phone, res.NextStatus)
	return nil
}
