package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type CaptureLeadInput struct {
	Phone    string `json:"phone"`
	FullName string `json:"fullname,omitempty"`
	Email    string `json:"email,omitempty"`
}

func ValidateCaptureLeadInput(input CaptureLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if len(input.FullName) > 200 {
		errors = append(errors, ValidationError{"fullname", "must not exceed 200 characters"})
	}

	return errors
}

func ValidateRegisterUserInput(input RegisterUserInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FullName) == "" {
		errors = append(errors, ValidationError{"fullname", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if len(input.Password) < 8 {
		errors = append(errors, ValidationError{"password", "must have at least 8 characters"})
	}

	if input.Role != "admin" && input.Role != "agent" {
		errors = append(errors, ValidationError{"role", "must be admin or agent"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	// 10 dígitos (fixo BR sem DDI) até 13 (DDI + DDD + 9 dígitos)
	return len(cleaned) >= 10 && len(cleaned) <= 13
}
