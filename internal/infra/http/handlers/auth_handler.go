package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-cursos/internal/usecase"
)

type AuthHandler struct {
	RegisterUC *usecase.RegisterUserUseCase
	LoginUC    *usecase.LoginUseCase
}

func NewAuthHandler(registerUC *usecase.RegisterUserUseCase, loginUC *usecase.LoginUseCase) *AuthHandler {
	return &AuthHandler{
		RegisterUC: registerUC,
		LoginUC:    loginUC,
	}
}

// HandleRegister (POST /auth/register, só admin)
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	output, err := h.RegisterUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

// HandleLogin (POST /auth/login)
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	output, err := h.LoginUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
