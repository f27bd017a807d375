package entity

import "context"

// TriggerTemplate liga uma palavra-chave normalizada (trigger) à resposta
// roteirizada e ao próximo estado do funil. Read-only para o motor.
type TriggerTemplate struct {
	Trigger      string `json:"trigger"`
	Message      string `json:"message"`
	NextStatus   string `json:"next_status"`
	NextDecision string `json:"next_decision"`
}

type TemplateRepositoryInterface interface {
	FindByTrigger(ctx context.Context, trigger string) (*TriggerTemplate, error)
	List(ctx context.Context) ([]*TriggerTemplate, error)
}
