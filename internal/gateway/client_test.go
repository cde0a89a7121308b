package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	return NewClient(&ClientConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, &log)
}

func TestListEventsParsesDates(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "title": "Cleanup", "date": "2026-04-01"},
			{"id": 2, "title": "Drive", "date": "2026-04-15T09:30:00"},
			{"id": 3, "title": "Broken", "date": "not-a-date"},
		})
	})

	events, err := client.ListEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 2, "records with unparseable dates are skipped, not fatal")
	assert.Equal(t, 2026, events[0].Date.Year())
	assert.Equal(t, 9, events[1].Date.Hour())
}

func TestListJoinedEventsNormalizesEventID(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/events", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]map[string]any{
			{"eventId": 42, "title": "Cleanup", "date": "2026-04-01", "members": 3},
			{"eventId": 43, "title": "Drive", "date": "2026-04-02"},
		})
	})

	records, err := client.ListJoinedEvents(context.Background(), "tok-1")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(42), records[0].EventID, "registration payloads key the event as eventId")
	assert.Equal(t, 3, records[0].Members)
	assert.Equal(t, 1, records[1].Members, "missing member count defaults to 1")
}

func TestJoinEventSendsMembersAndToken(t *testing.T) {
	var got struct {
		Members int `json:"members"`
	}
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/events/7/join", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.JoinEvent(context.Background(), "tok-1", 7, 4))
	assert.Equal(t, 4, got.Members)
}

func TestErrorKeepsBackendMessageVerbatim(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Already joined"})
	})

	err := client.JoinEvent(context.Background(), "tok-1", 7, 1)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusConflict, gwErr.StatusCode)
	assert.Equal(t, "Already joined", gwErr.Message)
	assert.Equal(t, "Already joined", err.Error())
}

func TestErrorWithoutBodyGetsStatusFallback(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := client.JoinEvent(context.Background(), "tok-1", 7, 1)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "request failed with status 502", gwErr.Message)
}

func TestDeleteGalleryPhotoSendsBody(t *testing.T) {
	var got struct {
		URL string `json:"url"`
	}
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/events/7/gallery", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.DeleteGalleryPhoto(context.Background(), "tok-1", 7, "https://img/x.jpg"))
	assert.Equal(t, "https://img/x.jpg", got.URL)
}

func TestDownloadCertificateReturnsRawBytes(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/7/certificate", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	})

	pdf, err := client.DownloadCertificate(context.Background(), "tok-1", 7)

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(pdf))
}

func TestDownloadCertificateError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "Certificate not available"})
	})

	_, err := client.DownloadCertificate(context.Background(), "tok-1", 7)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "Certificate not available", gwErr.Message)
}

func TestLogin(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		assert.Equal(t, "donor@example.com", creds["email"])
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-9",
			"user":  map[string]any{"id": 7, "username": "donor", "email": "donor@example.com"},
		})
	})

	result, err := client.Login(context.Background(), "donor@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok-9", result.Token)
	assert.Equal(t, int64(7), result.User.ID)
}
