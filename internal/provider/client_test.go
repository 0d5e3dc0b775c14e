package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emasjid/gateway/internal/provider"
)

func TestSendText_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/messages", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+60100000000", body["from"])
		assert.Equal(t, "+60123456789", body["to"])
		assert.Equal(t, "hello", body["body"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"message_id": "SM123"})
	}))
	t.Cleanup(srv.Close)

	c := provider.NewChatClient(srv.URL, "AC123", "secret", "+60100000000")
	id, err := c.SendText(context.Background(), "+60123456789", "hello")

	require.NoError(t, err)
	assert.Equal(t, "SM123", id)
}

func TestSendTemplate_SendsPositionalVariables(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/templates", r.URL.Path)

		var body struct {
			TemplateID string   `json:"template_id"`
			Variables  []string `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "duty_reminder_v1", body.TemplateID)
		assert.Equal(t, []string{"Ahmad", "2024-12-01", "Bilal Subuh"}, body.Variables)

		_ = json.NewEncoder(w).Encode(map[string]any{"message_id": "TM123"})
	}))
	t.Cleanup(srv.Close)

	c := provider.NewChatClient(srv.URL, "AC123", "secret", "+60100000000")
	id, err := c.SendTemplate(context.Background(), "+60123456789", "duty_reminder_v1",
		[]string{"Ahmad", "2024-12-01", "Bilal Subuh"})

	require.NoError(t, err)
	assert.Equal(t, "TM123", id)
}

func TestSend_ProviderRejectionIsAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid number"})
	}))
	t.Cleanup(srv.Close)

	c := provider.NewChatClient(srv.URL, "AC123", "secret", "+60100000000")
	_, err := c.SendText(context.Background(), "not-a-number", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}

func TestSend_MissingMessageIDIsAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	t.Cleanup(srv.Close)

	c := provider.NewChatClient(srv.URL, "AC123", "secret", "+60100000000")
	_, err := c.SendText(context.Background(), "+60123456789", "hello")

	require.Error(t, err)
}

func TestSend_MissingCredentials(t *testing.T) {
	t.Parallel()

	c := provider.NewChatClient("http://localhost:1", "", "", "+60100000000")
	_, err := c.SendText(context.Background(), "+60123456789", "hello")

	assert.ErrorIs(t, err, provider.ErrNotConfigured)
}
