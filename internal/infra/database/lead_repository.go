package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-cursos/internal/entity"
	"github.com/xavierca1/ligue-cursos/internal/usecase"
)

type LeadRepository struct {
	DB *sql.DB

	// Janela de silêncio antes do lead virar candidato de follow-up
	FollowupAfterHours int
}

func NewLeadRepository(db *sql.DB, followupAfterHours int) *LeadRepository {
	if followupAfterHours <= 0 {
		followupAfterHours = 24
	}
	return &LeadRepository{DB: db, FollowupAfterHours: followupAfterHours}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leads (id, phone, fullname, email, status, decision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (phone)
		DO UPDATE SET
			fullname = COALESCE(NULLIF(EXCLUDED.fullname, ''), leads.fullname),
			email = COALESCE(NULLIF(EXCLUDED.email, ''), leads.email),
			updated_at = NOW()
		RETURNING id, status, decision, created_at, updated_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.ID,
		lead.Phone,
		lead.FullName,
		lead.Email,
		lead.Status,
		lead.Decision,
	).Scan(
		&lead.ID,
		&lead.Status,
		&lead.Decision,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao salvar lead: %w", err)
	}

	return nil
}

const leadColumns = `
	id, phone, COALESCE(fullname, ''), COALESCE(email, ''),
	status, decision, course_id, last_contact_at, created_at, updated_at
`

func scanLead(row interface{ Scan(...any) error }) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Phone,
		&lead.FullName,
		&lead.Email,
		&lead.Status,
		&lead.Decision,
		&lead.CourseID,
		&lead.LastContactAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) FindByPhone(ctx context.Context, phone string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE phone = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, entity.NormalizePhone(phone)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lead não encontrado: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar lead: %w", err)
	}

	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) UpdateByPhone(ctx context.Context, phone string, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			fullname = COALESCE(NULLIF($2, ''), fullname),
			email = COALESCE(NULLIF($3, ''), email),
			status = COALESCE(NULLIF($4, ''), status),
			decision = COALESCE(NULLIF($5, ''), decision),
			updated_at = NOW()
		WHERE phone = $1
	`

	result, err := r.DB.ExecContext(
		ctx, query,
		entity.NormalizePhone(phone),
		lead.FullName,
		lead.Email,
		lead.Status,
		lead.Decision,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar lead: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *LeadRepository) DeleteByPhone(ctx context.Context, phone string) error {
	// O histórico vai junto: interaction sem lead viola o modelo
	if _, err := r.DB.ExecContext(ctx,
		`DELETE FROM interactions WHERE phone = $1`, entity.NormalizePhone(phone)); err != nil {
		return fmt.Errorf("falha ao apagar histórico do lead: %w", err)
	}

	if _, err := r.DB.ExecContext(ctx,
		`DELETE FROM leads WHERE phone = $1`, entity.NormalizePhone(phone)); err != nil {
		return fmt.Errorf("falha ao apagar lead: %w", err)
	}

	return nil
}

// ResolveTrigger garante a existência do lead e devolve o payload de
// renderização para a trigger. Trigger desconhecida -> usecase.ErrNoMatch.
func (r *LeadRepository) ResolveTrigger(ctx context.Context, phone, trigger string) (*entity.TemplateResolution, error) {
	// Primeiro contato cria o lead na hora: o histórico sempre aponta
	// para um lead existente.
	upsert := `
		INSERT INTO leads (id, phone, status, decision, created_at, updated_at)
		VALUES ($1, $2, 'NEW', 'UNDECIDED', NOW(), NOW())
		ON CONFLICT (phone) DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, upsert, uuid.New().String(), phone); err != nil {
		return nil, fmt.Errorf("falha ao garantir lead %s: %w", phone, err)
	}

	query := `
		SELECT
			t.message,
			t.next_status,
			t.next_decision,
			COALESCE(l.fullname, ''),
			COALESCE(l.email, ''),
			COALESCE(c.name, ''),
			COALESCE(c.start_date, ''),
			COALESCE(c.payment_link, ''),
			COALESCE(c.access_link, '')
		FROM trigger_templates t
		LEFT JOIN leads l ON l.phone = $1
		LEFT JOIN courses c ON c.id = COALESCE(
			(SELECT id FROM courses WHERE courses.trigger = t.trigger),
			l.course_id
		)
		WHERE t.trigger = $2
	`

	var res entity.TemplateResolution
	err := r.DB.QueryRowContext(ctx, query, phone, trigger).Scan(
		&res.Message,
		&res.NextStatus,
		&res.NextDecision,
		&res.FullName,
		&res.Email,
		&res.CourseName,
		&res.StartDate,
		&res.PaymentLink,
		&res.AccessLink,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNoMatch
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao resolver trigger: %w", err)
	}

	return &res, nil
}

// ListFollowupCandidates: leads sem contato há FollowupAfterHours e ainda
// em status que aceita reengajamento, já com o payload de renderização.
func (r *LeadRepository) ListFollowupCandidates(ctx context.Context) ([]*entity.FollowupCandidate, error) {
	query := `
		SELECT
			l.phone,
			t.message,
			t.next_status,
			t.next_decision,
			COALESCE(l.fullname, ''),
			COALESCE(l.email, ''),
			COALESCE(c.name, ''),
			COALESCE(c.start_date, ''),
			COALESCE(c.payment_link, ''),
			COALESCE(c.access_link, '')
		FROM leads l
		CROSS JOIN trigger_templates t
		LEFT JOIN courses c ON c.id = l.course_id
		WHERE t.trigger = 'FOLLOWUP'
			AND l.status IN ('NEW', 'CONTACTED', 'INTERESTED')
			AND (l.last_contact_at IS NULL OR l.last_contact_at < NOW() - ($1 * INTERVAL '1 hour'))
		ORDER BY l.last_contact_at ASC NULLS FIRST
	`

	rows, err := r.DB.QueryContext(ctx, query, r.FollowupAfterHours)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar candidatos: %w", err)
	}
	defer rows.Close()

	var candidates []*entity.FollowupCandidate
	for rows.Next() {
		var c entity.FollowupCandidate
		err := rows.Scan(
			&c.Phone,
			&c.Message,
			&c.NextStatus,
			&c.NextDecision,
			&c.FullName,
			&c.Email,
			&c.CourseName,
			&c.StartDate,
			&c.PaymentLink,
			&c.AccessLink,
		)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, &c)
	}

	return candidates, rows.Err()
}

// UpdateEngagement aplica o próximo estado resolvido e renova o
// last_contact_at. Campos vazios preservam o valor atual (follow-up só
// renova o contato).
func (r *LeadRepository) UpdateEngagement(ctx context.Context, phone string, eng entity.Engagement) error {
	query := `
		UPDATE leads SET
			status = COALESCE(NULLIF($2, ''), status),
			decision = COALESCE(NULLIF($3, ''), decision),
			course_id = COALESCE($4, course_id),
			last_contact_at = NOW(),
			updated_at = NOW()
		WHERE phone = $1
	`

	_, err := r.DB.ExecContext(ctx, query, phone, eng.Status, eng.Decision, eng.CourseID)
	if err != nil {
		return fmt.Errorf("falha ao atualizar engajamento: %w", err)
	}

	return nil
}
