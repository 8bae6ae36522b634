// Package sms implementa la entrega de mensajes cortos contra la API HTTP/JSON
// del proveedor de mensajería. El proveedor es opcional: sin base URL o token
// configurados el cliente queda deshabilitado y cada envío devuelve
// domain.ErrProviderDisabled.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tu-usuario/municare-api/internal/application/campaign"
	"github.com/tu-usuario/municare-api/internal/domain"
)

var _ campaign.SMSSender = (*HTTPClient)(nil)

// HTTPClient implementa campaign.SMSSender con POST JSON autenticado por token.
type HTTPClient struct {
	baseURL    string
	token      string
	senderID   string
	httpClient *http.Client
}

// NewHTTPClient construye el cliente con un timeout corto: un SMS que tarda
// más de 15 s ya falló para efectos de la campaña.
func NewHTTPClient(baseURL, token, senderID string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		senderID:   senderID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled indica si el proveedor está configurado.
func (c *HTTPClient) Enabled() bool {
	return c.baseURL != "" && c.token != ""
}

type sendRequest struct {
	To       string `json:"to"`
	Body     string `json:"body"`
	SenderID string `json:"sender_id,omitempty"`
}

type sendResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// Send entrega un mensaje a un número. Cualquier status fuera de 2xx cuenta
// como fallo del destinatario.
func (c *HTTPClient) Send(ctx context.Context, to, message string) error {
	if !c.Enabled() {
		return domain.ErrProviderDisabled
	}

	payload, err := json.Marshal(sendRequest{To: to, Body: message, SenderID: c.senderID})
	if err != nil {
		return fmt.Errorf("sms: serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sms: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("sms: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("sms: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)) // max 64 KB
	if err != nil {
		return fmt.Errorf("sms: leer respuesta: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var body sendResponse
		if json.Unmarshal(rawBody, &body) == nil && body.Detail != "" {
			return fmt.Errorf("sms: status %d: %s", resp.StatusCode, body.Detail)
		}
		return fmt.Errorf("sms: status %d: %s", resp.StatusCode, string(rawBody))
	}
	return nil
}
