package entity

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// Entidade: User (operador do CRM, não confundir com Lead)
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // admin | agent
	CreatedAt    time.Time `json:"created_at"`
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// Factory
func NewUser(fullName, email, passwordHash, role string) (*User, error) {
	user := &User{
		ID:           uuid.New().String(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *User) Validate() error {
	if u.FullName == "" {
		return errors.New("fullname is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.New("email is invalid")
	}
	if u.Role != RoleAdmin && u.Role != RoleAgent {
		return errors.New("role must be admin or agent")
	}
	return nil
}
