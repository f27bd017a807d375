package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Bootstrap cria o schema se não existir e semeia os templates padrão.
// Idempotente: pode rodar em todo boot.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			fullname TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'agent',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id INT PRIMARY KEY,
			trigger TEXT UNIQUE,
			name TEXT NOT NULL,
			start_date TEXT,
			payment_link TEXT,
			access_link TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id UUID PRIMARY KEY,
			phone TEXT NOT NULL UNIQUE,
			fullname TEXT,
			email TEXT,
			status TEXT NOT NULL DEFAULT 'NEW',
			decision TEXT NOT NULL DEFAULT 'UNDECIDED',
			course_id INT REFERENCES courses(id),
			last_contact_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id UUID PRIMARY KEY,
			phone TEXT NOT NULL REFERENCES leads(phone),
			message TEXT NOT NULL,
			direction TEXT NOT NULL CHECK (direction IN ('received', 'sent')),
			status TEXT,
			decision TEXT,
			course_id INT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_phone ON interactions (phone, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS trigger_templates (
			trigger TEXT PRIMARY KEY,
			message TEXT NOT NULL,
			next_status TEXT NOT NULL,
			next_decision TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("falha ao criar schema: %w", err)
		}
	}

	if err := seedTemplates(ctx, db); err != nil {
		return err
	}

	log.Println("🗄️ Schema pronto (users, leads, interactions, trigger_templates, courses)")
	return nil
}

func seedTemplates(ctx context.Context, db *sql.DB) error {
	seeds := []struct {
		trigger, message, nextStatus, nextDecision string
	}{
		{
			"HELLO",
			"Hi [FULLNAME]! Welcome 👋 Reply COURSE1 or COURSE2 to learn about our courses.",
			"CONTACTED", "UNDECIDED",
		},
		{
			"COURSE1",
			"Hi [FULLNAME], [Course Name] starts [Start Date]. Secure your spot: [Payment Link]",
			"INTERESTED", "CONSIDERING",
		},
		{
			"COURSE2",
			"Hi [FULLNAME], [Course Name] starts [Start Date]. Secure your spot: [Payment Link]",
			"INTERESTED", "CONSIDERING",
		},
		{
			"PAID",
			"Welcome aboard, [FULLNAME]! 🎉 Here is your access to [Course Name]: [Access Link]",
			"ENROLLED", "ENROLLED",
		},
		{
			"FOLLOWUP",
			"Hi [FULLNAME], still thinking about [Course Name]? It starts [Start Date] 😉",
			"", "",
		},
	}

	query := `
		INSERT INTO trigger_templates (trigger, message, next_status, next_decision)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (trigger) DO NOTHING
	`

	for _, s := range seeds {
		if _, err := db.ExecContext(ctx, query, s.trigger, s.message, s.nextStatus, s.nextDecision); err != nil {
			return fmt.Errorf("falha ao semear templates: %w", err)
		}
	}

	courses := `
		INSERT INTO courses (id, trigger, name, start_date, payment_link, access_link)
		VALUES
			(1, 'COURSE1', 'Curso Completo 1', NULL, NULL, NULL),
			(2, 'COURSE2', 'Curso Completo 2', NULL, NULL, NULL)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := db.ExecContext(ctx, courses); err != nil {
		return fmt.Errorf("falha ao semear cursos: %w", err)
	}

	return nil
}
