package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	number    INTEGER NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS matches (
	id             TEXT PRIMARY KEY,
	date           TEXT NOT NULL,
	type           TEXT,
	opponent       TEXT,
	venue          TEXT,
	goals_for      INTEGER,
	goals_against  INTEGER,
	formation      TEXT,
	mvp            TEXT,
	notes          TEXT,
	youtube_url    TEXT,
	photos         TEXT,
	is_multi_match INTEGER,
	sub_matches    TEXT
);
CREATE TABLE IF NOT EXISTS match_lineups (
	match_id   TEXT NOT NULL,
	player_id  TEXT NOT NULL,
	position   TEXT NOT NULL,
	is_starter INTEGER NOT NULL,
	PRIMARY KEY (match_id, position)
);
CREATE TABLE IF NOT EXISTS substitutions (
	match_id      TEXT NOT NULL,
	player_out_id TEXT NOT NULL,
	player_in_id  TEXT NOT NULL,
	minute        INTEGER NOT NULL,
	reason        TEXT,
	PRIMARY KEY (match_id, minute, player_out_id, player_in_id)
);
CREATE TABLE IF NOT EXISTS team_settings (
	id               INTEGER PRIMARY KEY CHECK (id = 1),
	team_name        TEXT,
	primary_color    TEXT,
	logo_url         TEXT,
	header_image_url TEXT
);
`

// SQLiteTarget writes the migration output to a SQLite database. Inserts
// are dumb upserts so a partially failed run can be re-executed.
type SQLiteTarget struct {
	db *sql.DB
}

func OpenSQLiteTarget(path string) (*SQLiteTarget, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLiteTarget{db: db}, nil
}

func (t *SQLiteTarget) Close() error {
	return t.db.Close()
}

func (t *SQLiteTarget) InsertPlayer(ctx context.Context, row PlayerRow) error {
	if row.ID == "" {
		return fmt.Errorf("player row missing id")
	}
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO players (id, name, number, is_active)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			number = excluded.number,
			is_active = excluded.is_active`,
		row.ID, row.Name, row.Number, row.IsActive)
	return err
}

func (t *SQLiteTarget) InsertMatch(ctx context.Context, row MatchRow) error {
	if row.ID == "" {
		return fmt.Errorf("match row missing id")
	}
	if _, err := parseDate(row.Date); err != nil {
		return err
	}

	photos, err := json.Marshal(row.Photos)
	if err != nil {
		return fmt.Errorf("encoding photos: %w", err)
	}
	subMatches, err := json.Marshal(row.SubMatches)
	if err != nil {
		return fmt.Errorf("encoding sub-matches: %w", err)
	}

	_, err = t.db.ExecContext(ctx, `
		INSERT INTO matches (id, date, type, opponent, venue, goals_for, goals_against,
			formation, mvp, notes, youtube_url, photos, is_multi_match, sub_matches)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			type = excluded.type,
			opponent = excluded.opponent,
			venue = excluded.venue,
			goals_for = excluded.goals_for,
			goals_against = excluded.goals_against,
			formation = excluded.formation,
			mvp = excluded.mvp,
			notes = excluded.notes,
			youtube_url = excluded.youtube_url,
			photos = excluded.photos,
			is_multi_match = excluded.is_multi_match,
			sub_matches = excluded.sub_matches`,
		row.ID, row.Date, row.Type, row.Opponent, row.Venue, row.GoalsFor, row.GoalsAgainst,
		row.Formation, row.MVP, row.Notes, row.YoutubeURL, string(photos), row.IsMultiMatch, string(subMatches))
	return err
}

func (t *SQLiteTarget) InsertLineup(ctx context.Context, row LineupRow) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO match_lineups (match_id, player_id, position, is_starter)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(match_id, position) DO UPDATE SET
			player_id = excluded.player_id,
			is_starter = excluded.is_starter`,
		row.MatchID, row.PlayerID, row.Position, row.IsStarter)
	return err
}

func (t *SQLiteTarget) InsertSubstitution(ctx context.Context, row SubstitutionRow) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO substitutions (match_id, player_out_id, player_in_id, minute, reason)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(match_id, minute, player_out_id, player_in_id) DO UPDATE SET
			reason = excluded.reason`,
		row.MatchID, row.PlayerOutID, row.PlayerInID, row.Minute, row.Reason)
	return err
}

func (t *SQLiteTarget) SaveTeamSettings(ctx context.Context, row SettingsRow) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO team_settings (id, team_name, primary_color, logo_url, header_image_url)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			team_name = excluded.team_name,
			primary_color = excluded.primary_color,
			logo_url = excluded.logo_url,
			header_image_url = excluded.header_image_url`,
		row.TeamName, row.PrimaryColor, row.LogoURL, row.HeaderImageURL)
	return err
}
