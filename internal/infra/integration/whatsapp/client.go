package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

type Client struct {
	accessToken string
	phoneID     string
	verifyToken string
	baseURL     string
	httpClient  *http.Client
}

func NewClient(accessToken, phoneID, verifyToken string) *Client {
	return &Client{
		accessToken: accessToken,
		phoneID:     phoneID,
		verifyToken: verifyToken,
		baseURL:     "https://graph.facebook.com/v18.0",
		httpClient:  http.DefaultClient,
	}
}

// VerifyToken é o segredo do handshake de verificação do webhook.
func (c *Client) VerifyToken() string {
	return c.verifyToken
}

// SendText envia uma mensagem de texto simples pela Cloud API.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	if c.accessToken == "" || c.phoneID == "" {
		log.Println("⚠️ WhatsApp: ACCESS_TOKEN ou PHONE_ID não configurados")
		return fmt.Errorf("whatsapp não configurado")
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "text",
		"text": map[string]string{
			"body": body,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("whatsapp: payload inválido: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("whatsapp: falha ao criar requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ WhatsApp: Erro ao enviar mensagem: %v", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("❌ WhatsApp: API retornou status %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("whatsapp api error: %d", resp.StatusCode)
	}

	var result SendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("whatsapp: resposta ilegível: %w", err)
	}

	if result.Error != nil {
		log.Printf("❌ WhatsApp: Erro na API: %s (Code: %d)", result.Error.Message, result.Error.Code)
		return fmt.Errorf("whatsapp: %s", result.Error.Message)
	}

	return nil
}
