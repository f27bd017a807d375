package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-cursos/internal/entity"
)

type InteractionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

// Append grava uma linha do histórico. Nunca há UPDATE aqui: o log é
// imutável depois de escrito.
func (r *InteractionRepository) Append(ctx context.Context, interaction *entity.Interaction) error {
	query := `
		INSERT INTO interactions (id, phone, message, direction, status, decision, course_id, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		interaction.ID,
		interaction.Phone,
		interaction.Message,
		interaction.Direction,
		interaction.Status,
		interaction.Decision,
		interaction.CourseID,
		interaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar interação: %w", err)
	}

	return nil
}

// ListByPhone devolve o histórico completo do lead, mais antigo primeiro.
func (r *InteractionRepository) ListByPhone(ctx context.Context, phone string) ([]*entity.Interaction, error) {
	query := `
		SELECT id, phone, message, direction,
			COALESCE(status, ''), COALESCE(decision, ''), course_id, created_at
		FROM interactions
		WHERE phone = $1
		ORDER BY created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, entity.NormalizePhone(phone))
	if err != nil {
		return nil, fmt.Errorf("falha ao listar interações: %w", err)
	}
	defer rows.Close()

	var interactions []*entity.Interaction
	for rows.Next() {
		var i entity.Interaction
		err := rows.Scan(
			&i.ID,
			&i.Phone,
			&i.Message,
			&i.Direction,
			&i.Status,
			&i.Decision,
			&i.CourseID,
			&i.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, &i)
	}

	return interactions, rows.Err()
}
