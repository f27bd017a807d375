package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-cursos/internal/entity"
	"github.com/xavierca1/ligue-cursos/internal/usecase"
)

type TemplateRepository struct {
	DB *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) FindByTrigger(ctx context.Context, trigger string) (*entity.TriggerTemplate, error) {
	query := `
		SELECT trigger, message, next_status, next_decision
		FROM trigger_templates
		WHERE trigger = $1
	`

	var t entity.TriggerTemplate
	err := r.DB.QueryRowContext(ctx, query, trigger).Scan(
		&t.Trigger,
		&t.Message,
		&t.NextStatus,
		&t.NextDecision,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNoMatch
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar template: %w", err)
	}

	return &t, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]*entity.TriggerTemplate, error) {
	query := `
		SELECT trigger, message, next_status, next_decision
		FROM trigger_templates
		ORDER BY trigger ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar templates: %w", err)
	}
	defer rows.Close()

	var templates []*entity.TriggerTemplate
	for rows.Next() {
		var t entity.TriggerTemplate
		if err := rows.Scan(&t.Trigger, &t.Message, &t.NextStatus, &t.NextDecision); err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}

	return templates, rows.Err()
}
