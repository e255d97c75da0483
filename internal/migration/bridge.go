package migration

import (
	"context"
	"fmt"
	"time"

	"club-backend/internal/models"
	"club-backend/internal/store"
)

// Row shapes for the normalized remote schema. Field names mirror the
// destination columns.
type PlayerRow struct {
	ID       string
	Name     string
	Number   int
	IsActive bool
}

type MatchRow struct {
	ID           string
	Date         string // YYYY-MM-DD, validated by targets
	Type         string
	Opponent     string
	Venue        string
	GoalsFor     int
	GoalsAgainst int
	Formation    string
	MVP          string
	Notes        string
	YoutubeURL   string
	Photos       []string
	IsMultiMatch bool
	SubMatches   []models.SubMatch
}

type LineupRow struct {
	MatchID   string
	PlayerID  string
	Position  string
	IsStarter bool
}

type SubstitutionRow struct {
	MatchID     string
	PlayerOutID string
	PlayerInID  string
	Minute      int
	Reason      string
}

type SettingsRow struct {
	TeamName       string
	PrimaryColor   string
	LogoURL        string
	HeaderImageURL string
}

// Target is the write side of the migration: a relational store with
// separate tables for players, matches, lineup assignments, substitutions
// and team settings.
type Target interface {
	InsertPlayer(ctx context.Context, row PlayerRow) error
	InsertMatch(ctx context.Context, row MatchRow) error
	InsertLineup(ctx context.Context, row LineupRow) error
	InsertSubstitution(ctx context.Context, row SubstitutionRow) error
	SaveTeamSettings(ctx context.Context, row SettingsRow) error
}

type Tally struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

type Counts struct {
	Players Tally    `json:"players"`
	Matches Tally    `json:"matches"`
	Errors  []string `json:"errors"`
}

// Result reports a completed migration run. Success means the migration ran
// to completion, not that every record succeeded; callers must inspect the
// tallies and error list.
type Result struct {
	Success bool   `json:"success"`
	Results Counts `json:"results"`
	Message string `json:"message"`
}

// Bridge performs a one-shot, best-effort transfer of the whole local
// document into a relational target. Records are migrated one at a time in
// iteration order; each insert is isolated, nothing is rolled back.
type Bridge struct {
	store  store.Store
	target Target
}

func NewBridge(s store.Store, t Target) *Bridge {
	return &Bridge{store: s, target: t}
}

func (b *Bridge) Migrate(ctx context.Context) Result {
	doc, err := b.store.Load(ctx)
	if err != nil {
		return Result{Message: fmt.Sprintf("loading local store: %v", err)}
	}

	res := Result{Results: Counts{Errors: []string{}}}

	for _, p := range doc.Players {
		row := PlayerRow{ID: p.ID, Name: p.Name, Number: p.Number, IsActive: true}
		if err := b.target.InsertPlayer(ctx, row); err != nil {
			res.Results.Players.Failed++
			res.Results.Errors = append(res.Results.Errors, fmt.Sprintf("player %s (#%d): %v", p.Name, p.Number, err))
			continue
		}
		res.Results.Players.Success++
	}

	for _, m := range doc.Matches {
		if err := b.target.InsertMatch(ctx, matchRow(m)); err != nil {
			res.Results.Matches.Failed++
			res.Results.Errors = append(res.Results.Errors, fmt.Sprintf("match vs %s (%s): %v", m.Opponent, m.Date, err))
			// A failed match contributes no lineup or substitution rows.
			continue
		}
		res.Results.Matches.Success++

		for _, pos := range models.FormationPositions(m.Formation) {
			playerID := m.Lineup[pos]
			if playerID == "" {
				continue
			}
			row := LineupRow{MatchID: m.ID, PlayerID: playerID, Position: pos, IsStarter: true}
			if err := b.target.InsertLineup(ctx, row); err != nil {
				res.Results.Errors = append(res.Results.Errors, fmt.Sprintf("lineup %s/%s: %v", m.ID, pos, err))
			}
		}

		for _, sub := range m.Substitutions {
			row := SubstitutionRow{MatchID: m.ID, PlayerOutID: sub.Out, PlayerInID: sub.In, Minute: sub.Minute, Reason: sub.Reason}
			if err := b.target.InsertSubstitution(ctx, row); err != nil {
				res.Results.Errors = append(res.Results.Errors, fmt.Sprintf("substitution %s minute %d: %v", m.ID, sub.Minute, err))
			}
		}
	}

	settings := SettingsRow{
		TeamName:       doc.TeamSettings.TeamName,
		PrimaryColor:   doc.TeamSettings.PrimaryColor,
		LogoURL:        doc.TeamSettings.LogoURL,
		HeaderImageURL: doc.TeamSettings.HeaderImageURL,
	}
	if err := b.target.SaveTeamSettings(ctx, settings); err != nil {
		res.Results.Errors = append(res.Results.Errors, fmt.Sprintf("team settings: %v", err))
	}

	res.Success = true
	res.Message = fmt.Sprintf("migrated %d/%d players, %d/%d matches (%d errors)",
		res.Results.Players.Success, res.Results.Players.Success+res.Results.Players.Failed,
		res.Results.Matches.Success, res.Results.Matches.Success+res.Results.Matches.Failed,
		len(res.Results.Errors))
	return res
}

func matchRow(m models.Match) MatchRow {
	return MatchRow{
		ID:           m.ID,
		Date:         m.Date,
		Type:         string(m.Type),
		Opponent:     m.Opponent,
		Venue:        m.Venue,
		GoalsFor:     m.GoalsFor,
		GoalsAgainst: m.GoalsAgainst,
		Formation:    m.Formation,
		MVP:          m.MVP,
		Notes:        m.Notes,
		YoutubeURL:   m.YoutubeURL,
		Photos:       m.Photos,
		IsMultiMatch: m.IsMultiMatch,
		SubMatches:   m.SubMatches,
	}
}

// parseDate validates the match date column. Targets reject rows whose date
// does not parse, which is what isolates a single bad match from the rest
// of the run.
func parseDate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	return t, nil
}
