package imagehost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	return NewClient(&ClientConfig{
		UploadURL:    srv.URL,
		UploadPreset: "donation_preset",
		Timeout:      2 * time.Second,
	}, &log)
}

func TestUploadSendsMultipartWithPreset(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "donation_preset", r.FormValue("upload_preset"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.jpg", header.Filename)

		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://res.example/photo.jpg",
		})
	})

	url, err := client.Upload(context.Background(), "photo.jpg", strings.NewReader("jpeg-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://res.example/photo.jpg", url)
}

func TestUploadFallsBackToPlainURL(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": "http://res.example/photo.jpg"})
	})

	url, err := client.Upload(context.Background(), "photo.jpg", strings.NewReader("x"))

	require.NoError(t, err)
	assert.Equal(t, "http://res.example/photo.jpg", url)
}

func TestUploadRejected(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid preset"}}`))
	})

	_, err := client.Upload(context.Background(), "photo.jpg", strings.NewReader("x"))

	assert.ErrorContains(t, err, "status 400")
}

func TestUploadReplyWithoutURL(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"public_id": "abc"})
	})

	_, err := client.Upload(context.Background(), "photo.jpg", strings.NewReader("x"))

	assert.ErrorContains(t, err, "no url")
}
