package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/xavierca1/ligue-cursos/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-cursos/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ligue-cursos/internal/infra/queue"
)

// WebhookHandler recebe os eventos da Cloud API e só empilha: o
// processamento fica no consumer da fila.
type WebhookHandler struct {
	Producer    queue.InboundProducerInterface
	VerifyToken string
}

func NewWebhookHandler(producer queue.InboundProducerInterface, verifyToken string) *WebhookHandler {
	return &WebhookHandler{
		Producer:    producer,
		VerifyToken: verifyToken,
	}
}

// HandleVerify (GET /webhook/whatsapp): handshake de verificação da Meta:
// devolve hub.challenge se o verify_token bater.
func (h *WebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == h.VerifyToken {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	http.Error(w, "Forbidden", http.StatusForbidden)
}

// HandleInbound (POST /webhook/whatsapp)
func (h *WebhookHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	var payload whatsapp.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad JSON", http.StatusBadRequest)
		return
	}

	for _, msg := range payload.TextMessages() {
		inbound := queue.InboundMessage{From: msg.From, Body: msg.Text.Body}

		if err := h.Producer.PublishInbound(r.Context(), inbound); err != nil {
			// A Meta reentrega em caso de não-200, então aqui loga e
			// segue: melhor perder uma do que duplicar todas
			log.Printf("❌ Falha ao empilhar mensagem de %s: %v", msg.From, err)
			continue
		}

		middleware.RecordMessageReceived()
	}

	// Sempre 200: a Cloud API desativa webhooks que respondem erro demais
	w.WriteHeader(http.StatusOK)
}
