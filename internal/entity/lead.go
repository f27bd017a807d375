package entity

import (
	"context"
	"errors"
	"regexp"
	"time"
)

// Entidade: Lead (prospect rastreado pelo telefone no funil de vendas)
type Lead struct {
	ID            string     `json:"id"`
	Phone         string     `json:"phone"` // chave natural, único
	FullName      string     `json:"fullname"`
	Email         string     `json:"email,omitempty"`
	Status        string     `json:"status"`   // NEW, CONTACTED, INTERESTED, ENROLLED, LOST
	Decision      string     `json:"decision"` // UNDECIDED, CONSIDERING, ENROLLED
	CourseID      *int       `json:"course_id,omitempty"`
	LastContactAt *time.Time `json:"last_contact_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TemplateResolution é o que o resolver devolve para uma trigger reconhecida:
// o template cru + o próximo estado do lead + os campos da renderização.
type TemplateResolution struct {
	Message      string `json:"message"`
	NextStatus   string `json:"next_status"`
	NextDecision string `json:"next_decision"`
	FullName     string `json:"fullname"`
	Email        string `json:"email"`
	CourseName   string `json:"course_name"`
	StartDate    string `json:"start_date"`
	PaymentLink  string `json:"payment_link"`
	AccessLink   string `json:"access_link"`
}

// FollowupCandidate já vem pronto do banco: mesmo payload da resolução + telefone.
type FollowupCandidate struct {
	Phone string `json:"phone"`
	TemplateResolution
}

// Engagement é a mutação aplicada no lead depois de cada troca de mensagem.
type Engagement struct {
	Status   string
	Decision string
	CourseID *int
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByPhone(ctx context.Context, phone string) (*Lead, error)
	List(ctx context.Context) ([]*Lead, error)
	UpdateByPhone(ctx context.Context, phone string, lead *Lead) error
	DeleteByPhone(ctx context.Context, phone string) error

	// Superfície consumida pelo motor do bot
	ResolveTrigger(ctx context.Context, phone, trigger string) (*TemplateResolution, error)
	ListFollowupCandidates(ctx context.Context) ([]*FollowupCandidate, error)
	UpdateEngagement(ctx context.Context, phone string, eng Engagement) error
}

var phoneDigits = regexp.MustCompile(`\D`)

// NormalizePhone mantém só os dígitos (E.164 sem o "+").
func NormalizePhone(phone string) string {
	return phoneDigits.ReplaceAllString(phone, "")
}

// Factory
func NewLead(phone, fullName, email string) (*Lead, error) {
	lead := &Lead{
		Phone:     NormalizePhone(phone),
		FullName:  fullName,
		Email:     email,
		Status:    "NEW",
		Decision:  "UNDECIDED",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if len(l.Phone) < 10 || len(l.Phone) > 13 {
		return errors.New("phone must have between 10 and 13 digits")
	}
	return nil
}
