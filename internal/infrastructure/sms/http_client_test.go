package sms_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/infrastructure/sms"
)

// Envío exitoso: el payload y la autenticación llegan como el proveedor espera.
func TestSend_PayloadYAutenticacion(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := sms.NewHTTPClient(srv.URL, "token-123", "MUNICARE")
	err := client.Send(context.Background(), "+27115550001", "Corte de agua el lunes")
	require.NoError(t, err)

	assert.Equal(t, "Token token-123", gotAuth)
	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "+27115550001", gotBody["to"])
	assert.Equal(t, "Corte de agua el lunes", gotBody["body"])
	assert.Equal(t, "MUNICARE", gotBody["sender_id"])
}

// Un status fuera de 2xx cuenta como fallo e incluye el detalle del proveedor.
func TestSend_ErrorDelProveedor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "detail": "número inválido"})
	}))
	defer srv.Close()

	client := sms.NewHTTPClient(srv.URL, "token-123", "MUNICARE")
	err := client.Send(context.Background(), "no-es-numero", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "número inválido")
}

// Sin base URL o token el cliente queda deshabilitado.
func TestSend_ClienteDeshabilitado(t *testing.T) {
	client := sms.NewHTTPClient("", "", "MUNICARE")
	assert.False(t, client.Enabled())

	err := client.Send(context.Background(), "+27115550001", "hola")
	assert.ErrorIs(t, err, domain.ErrProviderDisabled)
}
