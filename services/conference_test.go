package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPConferenceGatewayProvision(t *testing.T) {
	var got conferencePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meetings", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(conferenceResponse{
			MeetingURL:   "https://meet.example/room",
			ModeratorURL: "https://meet.example/room?mod=1",
		})
	}))
	defer srv.Close()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	g := NewHTTPConferenceGateway(srv.URL+"/", "key", time.Second, loc)

	links := g.Provision(context.Background(), ConferenceRequest{Owner: "Dr. Rao", Date: "2026-03-10", Time: "13:05:00"})
	require.NotNil(t, links)
	assert.Equal(t, "https://meet.example/room", links.MeetingURL)
	assert.Equal(t, "Dr. Rao", got.Owner)
	assert.Equal(t, "2026-03-10T07:35:00Z", got.StartTime)
	assert.NotEmpty(t, got.Room)
}

func TestHTTPConferenceGatewayDegrades(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
		{"empty links", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"meetingUrl":""}`))
		}},
		{"slow provider", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			g := NewHTTPConferenceGateway(srv.URL, "", 50*time.Millisecond, time.UTC)
			assert.Nil(t, g.Provision(context.Background(), ConferenceRequest{Owner: "x", Date: "2026-03-10", Time: "10:00:00"}))
		})
	}
}

func TestHTTPConferenceGatewayUnconfigured(t *testing.T) {
	g := NewHTTPConferenceGateway("", "", time.Second, nil)
	assert.Nil(t, g.Provision(context.Background(), ConferenceRequest{Owner: "x", Date: "2026-03-10", Time: "10:00:00"}))
}

func TestStartInstant(t *testing.T) {
	g := NewHTTPConferenceGateway("http://x", "", time.Second, time.UTC)
	got, err := g.StartInstant(ConferenceRequest{Date: "2026-12-31", Time: "23:30:00"})
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31T23:30:00Z", got)
}
