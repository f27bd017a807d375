package usecase

import (
	"context"

	"github.com/xavierca1/ligue-cursos/internal/entity"
)

// MessageGateway é o transporte de chat. O motor só precisa mandar texto;
// o recebimento chega pela fila (webhook -> queue -> consumer).
type MessageGateway interface {
	SendText(ctx context.Context, to, body string) error
}

// AccessMailer manda o email de acesso quando o lead fecha matrícula.
type AccessMailer interface {
	SendAccess(to, name, courseName, accessLink string) error
}

type HandleMessageUseCase struct {
	LeadRepo        entity.LeadRepositoryInterface
	InteractionRepo entity.InteractionRepositoryInterface
	Gateway         MessageGateway
	Mailer          AccessMailer
}

type FollowUpUseCase struct {
	LeadRepo        entity.LeadRepositoryInterface
	InteractionRepo entity.InteractionRepositoryInterface
	Gateway         MessageGateway
}
