package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/ligue-cursos/internal/entity"
)

type RegisterUserInput struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterUserOutput struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type RegisterUserUseCase struct {
	Repo entity.UserRepositoryInterface
}

func NewRegisterUserUseCase(repo entity.UserRepositoryInterface) *RegisterUserUseCase {
	return &RegisterUserUseCase{Repo: repo}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	if errs := ValidateRegisterUserInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "INVALID_INPUT", Message: errs[0].Error()}
	}

	if existing, _ := uc.Repo.FindByEmail(ctx, input.Email); existing != nil {
		return nil, &DomainError{Code: "USER_EXISTS", Message: "user already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &TechnicalError{Code: "HASH_FAILED", Message: "falha ao gerar hash de senha", Err: err}
	}

	user, err := entity.NewUser(input.FullName, input.Email, string(hash), input.Role)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_INPUT", Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, user); err != nil {
		return nil, &TechnicalError{Code: "DB_WRITE", Message: "falha ao criar usuário", Err: err}
	}

	return &RegisterUserOutput{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}
