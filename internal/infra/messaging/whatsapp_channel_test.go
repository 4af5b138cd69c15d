package messaging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWhatsAppChannel_Send(t *testing.T) {
	var got whatsappPayload
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	channel := NewWhatsAppChannel(server.URL, "secret", time.Second, discardLogger())

	err := channel.Send(context.Background(), "+9647701234567", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "+9647701234567", got.To)
	assert.Equal(t, "hello", got.Body)
}

func TestWhatsAppChannel_SendGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad number", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	channel := NewWhatsAppChannel(server.URL, "", time.Second, discardLogger())

	err := channel.Send(context.Background(), "+9647701234567", "hello")
	assert.ErrorContains(t, err, "422")
}

func TestWhatsAppChannel_SendTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	channel := NewWhatsAppChannel(server.URL, "", 20*time.Millisecond, discardLogger())

	err := channel.Send(context.Background(), "+9647701234567", "hello")
	assert.Error(t, err)
}
