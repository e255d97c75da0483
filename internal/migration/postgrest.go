package migration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PostgRESTTarget writes migration rows to a hosted Postgres through its
// PostgREST surface (one POST per row, merge-duplicates resolution so
// re-runs upsert instead of conflicting).
type PostgRESTTarget struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPostgRESTTarget(baseURL, apiKey string) *PostgRESTTarget {
	return &PostgRESTTarget{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *PostgRESTTarget) post(ctx context.Context, table string, row any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encoding %s row: %w", table, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/rest/v1/"+table, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", table, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", t.apiKey)
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("inserting into %s: status %d: %s", table, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func (t *PostgRESTTarget) InsertPlayer(ctx context.Context, row PlayerRow) error {
	if row.ID == "" {
		return fmt.Errorf("player row missing id")
	}
	return t.post(ctx, "players", map[string]any{
		"id":        row.ID,
		"name":      row.Name,
		"number":    row.Number,
		"is_active": row.IsActive,
	})
}

func (t *PostgRESTTarget) InsertMatch(ctx context.Context, row MatchRow) error {
	if row.ID == "" {
		return fmt.Errorf("match row missing id")
	}
	if _, err := parseDate(row.Date); err != nil {
		return err
	}
	return t.post(ctx, "matches", map[string]any{
		"id":             row.ID,
		"date":           row.Date,
		"type":           row.Type,
		"opponent":       row.Opponent,
		"venue":          row.Venue,
		"goals_for":      row.GoalsFor,
		"goals_against":  row.GoalsAgainst,
		"formation":      row.Formation,
		"mvp":            row.MVP,
		"notes":          row.Notes,
		"youtube_url":    row.YoutubeURL,
		"photos":         row.Photos,
		"is_multi_match": row.IsMultiMatch,
		"sub_matches":    row.SubMatches,
	})
}

func (t *PostgRESTTarget) InsertLineup(ctx context.Context, row LineupRow) error {
	return t.post(ctx, "match_lineups", map[string]any{
		"match_id":   row.MatchID,
		"player_id":  row.PlayerID,
		"position":   row.Position,
		"is_starter": row.IsStarter,
	})
}

func (t *PostgRESTTarget) InsertSubstitution(ctx context.Context, row SubstitutionRow) error {
	return t.post(ctx, "substitutions", map[string]any{
		"match_id":      row.MatchID,
		"player_out_id": row.PlayerOutID,
		"player_in_id":  row.PlayerInID,
		"minute":        row.Minute,
		"reason":        row.Reason,
	})
}

func (t *PostgRESTTarget) SaveTeamSettings(ctx context.Context, row SettingsRow) error {
	return t.post(ctx, "team_settings", map[string]any{
		"team_name":        row.TeamName,
		"primary_color":    row.PrimaryColor,
		"logo_url":         row.LogoURL,
		"header_image_url": row.HeaderImageURL,
	})
}
