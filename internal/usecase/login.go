package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/ligue-cursos/internal/entity"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type LoginUseCase struct {
	Repo      entity.UserRepositoryInterface
	JWTSecret []byte
	TokenTTL  time.Duration
}

func NewLoginUseCase(repo entity.UserRepositoryInterface, jwtSecret string) *LoginUseCase {
	return &LoginUseCase{
		Repo:      repo,
		JWTSecret: []byte(jwtSecret),
		TokenTTL:  24 * time.Hour,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := uc.Repo.FindByEmail(ctx, input.Email)
	if err != nil || user == nil {
		// Mesma resposta para email desconhecido e senha errada
		return nil, &DomainError{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, &DomainError{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"}
	}

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(uc.TokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.JWTSecret)
	if err != nil {
		return nil, &TechnicalError{Code: "TOKEN_SIGN", Message: "falha ao assinar token", Err: err}
	}

	return &LoginOutput{Token: token, User: user}, nil
}
