package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-cursos/internal/entity"
)

type TemplateHandler struct {
	TemplateRepo entity.TemplateRepositoryInterface
}

func NewTemplateHandler(templateRepo entity.TemplateRepositoryInterface) *TemplateHandler {
	return &TemplateHandler{TemplateRepo: templateRepo}
}

// HandleList (GET /templates): o roteiro completo do bot, para o painel.
func (h *TemplateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	templates, err := h.TemplateRepo.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list templates", http.StatusInternalServerError)
		return
	}

	if templates == nil {
		templates = []*entity.TriggerTemplate{}
	}

	writeJSON(w, http.StatusOK, templates)
}
