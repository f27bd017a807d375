package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	DirectionReceived = "received"
	DirectionSent     = "sent"
)

// Interaction é uma linha do histórico de conversa. Append-only: nunca
// atualizada nem removida pelo motor.
type Interaction struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Direction string    `json:"direction"` // received | sent
	Status    string    `json:"status,omitempty"`
	Decision  string    `json:"decision,omitempty"`
	CourseID  *int      `json:"course_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type InteractionRepositoryInterface interface {
	Append(ctx context.Context, interaction *Interaction) error
}

func NewInteraction(phone, message, direction string) *Interaction {
	return &Interaction{
		ID:        uuid.New().String(),
		Phone:     phone,
		Message:   message,
		Direction: direction,
		CreatedAt: time.Now(),
	}
}
