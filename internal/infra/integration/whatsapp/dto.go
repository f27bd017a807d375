package whatsapp

type SendMessageResponse struct {
	Contacts []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *ErrorResponse `json:"error"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// WebhookPayload é o envelope que a Cloud API entrega no POST do webhook.
// Só o caminho entry -> changes -> value -> messages interessa aqui.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string       `json:"field"`
			Value WebhookValue `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	From string `json:"from"`
	ID   string `json:"id"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
}

// TextMessages achata o envelope para a lista de mensagens de texto.
// Mídia e reação ficam de fora: o motor só conversa por texto.
func (p *WebhookPayload) TextMessages() []WebhookMessage {
	var out []WebhookMessage
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type == "text" && msg.Text != nil {
					out = append(out, msg)
				}
			}
		}
	}
	return out
}
