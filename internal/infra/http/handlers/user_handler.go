package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-cursos/internal/entity"
)

type UserHandler struct {
	UserRepo entity.UserRepositoryInterface
}

func NewUserHandler(userRepo entity.UserRepositoryInterface) *UserHandler {
	return &UserHandler{UserRepo: userRepo}
}

// HandleList (GET /users, só admin)
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	if users == nil {
		users = []*entity.User{}
	}

	writeJSON(w, http.StatusOK, users)
}
