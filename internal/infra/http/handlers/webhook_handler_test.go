package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-cursos/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-cursos/internal/infra/queue"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishInbound(ctx context.Context, msg queue.InboundMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

const cloudAPIPayload = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "123",
		"changes": [{
			"field": "messages",
			"value": {
				"messaging_product": "whatsapp",
				"messages": [
					{"from": "15551234567", "id": "wamid.1", "type": "text", "text": {"body": "COURSE1"}},
					{"from": "15551234567", "id": "wamid.2", "type": "image"}
				]
			}
		}]
	}]
}`

func TestWebhookVerifyHandshake(t *testing.T) {
	h := handlers.NewWebhookHandler(new(MockProducer), "segredo")

	req := httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=segredo&hub.challenge=42", nil)
	rec := httptest.NewRecorder()

	h.HandleVerify(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())
}

func TestWebhookVerifyWrongToken(t *testing.T) {
	h := handlers.NewWebhookHandler(new(MockProducer), "segredo")

	req := httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=errado&hub.challenge=42", nil)
	rec := httptest.NewRecorder()

	h.HandleVerify(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookInboundPublishesTextMessages(t *testing.T) {
	producer := new(MockProducer)
	producer.On("PublishInbound", mock.Anything, queue.InboundMessage{
		From: "15551234567",
		Body: "COURSE1",
	}).Return(nil)

	h := handlers.NewWebhookHandler(producer, "segredo")

	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(cloudAPIPayload))
	rec := httptest.NewRecorder()

	h.HandleInbound(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Só a mensagem de texto é empilhada; a imagem é ignorada
	producer.AssertNumberOfCalls(t, "PublishInbound", 1)
}

func TestWebhookInboundPublishFailureStill200(t *testing.T) {
	producer := new(MockProducer)
	producer.On("PublishInbound", mock.Anything, mock.Anything).Return(assert.AnError)

	h := handlers.NewWebhookHandler(producer, "segredo")

	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(cloudAPIPayload))
	rec := httptest.NewRecorder()

	h.HandleInbound(rec, req)

	// Nunca devolve erro pra Meta por falha interna
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookInboundBadJSON(t *testing.T) {
	h := handlers.NewWebhookHandler(new(MockProducer), "segredo")

	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()

	h.HandleInbound(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
