package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-cursos/internal/entity"
	"github.com/xavierca1/ligue-cursos/internal/infra/database"
	"github.com/xavierca1/ligue-cursos/internal/usecase"
)

type LeadHandler struct {
	LeadRepo        entity.LeadRepositoryInterface
	InteractionRepo *database.InteractionRepository
	rateLimiter     *RateLimiter
}

func NewLeadHandler(leadRepo entity.LeadRepositoryInterface, interactionRepo *database.InteractionRepository) *LeadHandler {
	return &LeadHandler{
		LeadRepo:        leadRepo,
		InteractionRepo: interactionRepo,
		rateLimiter:     NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HandleCapture (POST /leads/capture, público com rate limit por IP,
// é o formulário da landing page)
func (h *LeadHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	if errs := usecase.ValidateCaptureLeadInput(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: errs[0].Error(),
		})
		return
	}

	lead, err := entity.NewLead(req.Phone, req.FullName, req.Email)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if err := h.LeadRepo.Create(ctx, lead); err != nil {
		writeJSON(w, http.StatusInternalServerError, CaptureLeadResponse{
			Success: false,
			Message: "Failed to capture lead",
		})
		return
	}

	writeJSON(w, http.StatusOK, CaptureLeadResponse{Success: true})
}

// HandleCreate (POST /leads, autenticado)
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	lead, err := entity.NewLead(req.Phone, req.FullName, req.Email)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	if err := h.LeadRepo.Create(r.Context(), lead); err != nil {
		http.Error(w, "Failed to create lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

// HandleList (GET /leads)
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list leads", http.StatusInternalServerError)
		return
	}

	if leads == nil {
		leads = []*entity.Lead{}
	}

	writeJSON(w, http.StatusOK, leads)
}

// HandleGet (GET /leads/{phone})
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	lead, err := h.LeadRepo.FindByPhone(r.Context(), phone)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Lead not found"})
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// HandleUpdate (PUT /leads/{phone})
func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	var lead entity.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.LeadRepo.UpdateByPhone(r.Context(), phone, &lead); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Lead not found"})
		return
	}

	updated, err := h.LeadRepo.FindByPhone(r.Context(), phone)
	if err != nil {
		http.Error(w, "Failed to load lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete (DELETE /leads/{phone}, só admin)
func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	if err := h.LeadRepo.DeleteByPhone(r.Context(), phone); err != nil {
		http.Error(w, "Failed to delete lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Lead deleted"})
}

// HandleInteractions (GET /leads/{phone}/interactions)
func (h *LeadHandler) HandleInteractions(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	interactions, err := h.InteractionRepo.ListByPhone(r.Context(), phone)
	if err != nil {
		http.Error(w, "Failed to list interactions", http.StatusInternalServerError)
		return
	}

	if interactions == nil {
		interactions = []*entity.Interaction{}
	}

	writeJSON(w, http.StatusOK, interactions)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
