package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"RoboScan360/models"
)

type ConferenceRequest struct {
	Owner string
	// Date is YYYY-MM-DD and Time is 24-hour HH:MM:SS.
	Date string
	Time string
}

// ConferenceGateway issues meeting links. Provision never fails the caller:
// a nil result means the provider could not be reached and the caller
// continues without links.
type ConferenceGateway interface {
	Provision(ctx context.Context, req ConferenceRequest) *models.ConferenceLinks
}

type HTTPConferenceGateway struct {
	BaseURL  string
	APIKey   string
	Client   *http.Client
	Location *time.Location
}

type conferencePayload struct {
	Room      string `json:"room"`
	Owner     string `json:"owner"`
	StartTime string `json:"startTime"`
}

type conferenceResponse struct {
	MeetingURL   string `json:"meetingUrl"`
	ModeratorURL string `json:"moderatorUrl"`
}

func NewHTTPConferenceGateway(baseURL, apiKey string, timeout time.Duration, loc *time.Location) *HTTPConferenceGateway {
	if loc == nil {
		loc = time.UTC
	}
	return &HTTPConferenceGateway{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: timeout},
		Location: loc,
	}
}

// StartInstant converts the appointment's local date and time to an
// ISO-8601 UTC instant.
func (g *HTTPConferenceGateway) StartInstant(req ConferenceRequest) (string, error) {
	start, err := time.ParseInLocation(instantLayout, req.Date+" "+req.Time, g.Location)
	if err != nil {
		return "", err
	}
	return start.UTC().Format(time.RFC3339), nil
}

func (g *HTTPConferenceGateway) Provision(ctx context.Context, req ConferenceRequest) *models.ConferenceLinks {
	links, err := g.provision(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("owner", req.Owner).Str("date", req.Date).Msg("conference provisioning degraded")
		return nil
	}
	return links
}

func (g *HTTPConferenceGateway) provision(ctx context.Context, req ConferenceRequest) (*models.ConferenceLinks, error) {
	if g.BaseURL == "" {
		return nil, fmt.Errorf("conference provider not configured")
	}
	start, err := g.StartInstant(req)
	if err != nil {
		return nil, fmt.Errorf("start instant: %w", err)
	}
	payload, err := json.Marshal(conferencePayload{
		Room:      uuid.NewString(),
		Owner:     req.Owner,
		StartTime: start,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/meetings", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if g.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)
	}

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("conference provider returned status %d", resp.StatusCode)
	}
	var body conferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode conference response: %w", err)
	}
	if body.MeetingURL == "" || body.ModeratorURL == "" {
		return nil, fmt.Errorf("conference provider returned empty links")
	}
	return &models.ConferenceLinks{MeetingURL: body.MeetingURL, ModeratorURL: body.ModeratorURL}, nil
}
