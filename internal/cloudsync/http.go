package cloudsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"club-backend/internal/models"
)

// envelope is the wire shape of the remote API:
// {success, data:{players, lastUpdated, version}, message}.
type envelope struct {
	Success bool     `json:"success"`
	Data    *payload `json:"data"`
	Message string   `json:"message"`
}

type payload struct {
	Players     []RemotePlayer `json:"players"`
	LastUpdated string         `json:"lastUpdated"`
	Version     int64          `json:"version"`
}

func (p *payload) snapshot() *Snapshot {
	snap := &Snapshot{Players: p.Players, Version: p.Version}
	if t, err := time.Parse(time.RFC3339, p.LastUpdated); err == nil {
		snap.LastUpdated = t
	}
	return snap
}

// HTTPRemote talks to the serverless player-collection API.
type HTTPRemote struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPRemote(baseURL string) *HTTPRemote {
	return &HTTPRemote{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *HTTPRemote) Fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/players", nil)
	if err != nil {
		return nil, fmt.Errorf("creating fetch request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding fetch response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("remote fetch failed: %s", remoteMessage(env, resp.StatusCode))
	}
	if env.Data == nil {
		return &Snapshot{}, nil
	}
	return env.Data.snapshot(), nil
}

func (r *HTTPRemote) Save(ctx context.Context, players []models.Player, credential string) (*Snapshot, error) {
	body, err := json.Marshal(map[string]any{"players": players})
	if err != nil {
		return nil, fmt.Errorf("encoding players: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/players", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("saving players: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding save response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("remote save failed: %s", remoteMessage(env, resp.StatusCode))
	}
	if env.Data == nil {
		return &Snapshot{}, nil
	}
	return env.Data.snapshot(), nil
}

func remoteMessage(env envelope, status int) string {
	if env.Message != "" {
		return env.Message
	}
	return fmt.Sprintf("status %d", status)
}
