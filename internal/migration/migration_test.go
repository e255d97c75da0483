package migration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-backend/internal/models"
	"club-backend/internal/store"
)

// fakeTarget counts rows and fails on demand. InsertMatch applies the same
// date validation as the real targets.
type fakeTarget struct {
	players     []PlayerRow
	matches     []MatchRow
	lineups     []LineupRow
	subs        []SubstitutionRow
	settings    []SettingsRow
	failPlayers map[string]bool
}

func (f *fakeTarget) InsertPlayer(_ context.Context, row PlayerRow) error {
	if f.failPlayers[row.ID] {
		return fmt.Errorf("duplicate key")
	}
	f.players = append(f.players, row)
	return nil
}

func (f *fakeTarget) InsertMatch(_ context.Context, row MatchRow) error {
	if _, err := parseDate(row.Date); err != nil {
		return err
	}
	f.matches = append(f.matches, row)
	return nil
}

func (f *fakeTarget) InsertLineup(_ context.Context, row LineupRow) error {
	f.lineups = append(f.lineups, row)
	return nil
}

func (f *fakeTarget) InsertSubstitution(_ context.Context, row SubstitutionRow) error {
	f.subs = append(f.subs, row)
	return nil
}

func (f *fakeTarget) SaveTeamSettings(_ context.Context, row SettingsRow) error {
	f.settings = append(f.settings, row)
	return nil
}

func seedDocument(t *testing.T) *models.Document {
	t.Helper()
	doc := models.DefaultDocument()
	doc.Players = append(doc.Players,
		models.Player{ID: "p1", Name: "Marta", Number: 10},
		models.Player{ID: "p2", Name: "Luis", Number: 9},
	)

	good := models.Match{ID: "m1", Date: "2026-03-14", Type: models.MatchLeague, Opponent: "Rovers"}
	require.NoError(t, good.SetFormation("4-4-2"))
	good.Lineup["GK"] = "p2"
	good.Lineup["ST1"] = "p1"
	require.NoError(t, good.AddSubstitution(models.Substitution{ID: "s1", Minute: 60, Out: "p1", In: "p2", Reason: "injury"}))

	bad := models.Match{ID: "m2", Date: "14/03/2026", Type: models.MatchCup, Opponent: "United"}
	require.NoError(t, bad.SetFormation("4-4-2"))
	bad.Lineup["GK"] = "p2"

	doc.Matches = append(doc.Matches, good, bad)
	doc.TeamSettings = models.TeamSettings{TeamName: "Riverside FC", PrimaryColor: "#cc0000"}
	return doc
}

func seededStore(t *testing.T, doc *models.Document) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(context.Background(), doc))
	return s
}

func TestMigratePartialFailureIsolation(t *testing.T) {
	target := &fakeTarget{}
	s := seededStore(t, seedDocument(t))

	res := NewBridge(s, target).Migrate(context.Background())

	// The run completed, so Success is true even with failures inside.
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Results.Players.Success)
	assert.Equal(t, 0, res.Results.Players.Failed)
	assert.Equal(t, 1, res.Results.Matches.Success)
	assert.Equal(t, 1, res.Results.Matches.Failed)
	require.NotEmpty(t, res.Results.Errors)
	assert.Contains(t, res.Results.Errors[0], "United")

	// The good match's dependent rows were still attempted.
	assert.Len(t, target.lineups, 2)
	assert.Len(t, target.subs, 1)
	// The failed match contributed no dependent rows.
	for _, l := range target.lineups {
		assert.Equal(t, "m1", l.MatchID)
	}
	assert.Len(t, target.settings, 1)
}

func TestMigrateSuccessTrueDespitePlayerFailures(t *testing.T) {
	target := &fakeTarget{failPlayers: map[string]bool{"p1": true}}
	s := seededStore(t, seedDocument(t))

	res := NewBridge(s, target).Migrate(context.Background())

	assert.True(t, res.Success, "success means the migration ran to completion")
	assert.Equal(t, 1, res.Results.Players.Success)
	assert.Equal(t, 1, res.Results.Players.Failed)
	assert.Contains(t, res.Results.Errors[0], "Marta")
}

func TestMigrateEmptyDocument(t *testing.T) {
	target := &fakeTarget{}
	s := store.NewMemoryStore()

	res := NewBridge(s, target).Migrate(context.Background())

	assert.True(t, res.Success)
	assert.Equal(t, Tally{}, res.Results.Players)
	assert.Equal(t, Tally{}, res.Results.Matches)
	assert.Empty(t, res.Results.Errors)
}

func TestSQLiteTargetMigration(t *testing.T) {
	target, err := OpenSQLiteTarget(filepath.Join(t.TempDir(), "club.db"))
	require.NoError(t, err)
	defer target.Close()

	s := seededStore(t, seedDocument(t))
	res := NewBridge(s, target).Migrate(context.Background())

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Results.Players.Success)
	assert.Equal(t, 1, res.Results.Matches.Success)
	assert.Equal(t, 1, res.Results.Matches.Failed)

	var count int
	require.NoError(t, target.db.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&count))
	assert.Equal(t, 2, count)
	require.NoError(t, target.db.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&count))
	assert.Equal(t, 1, count)
	require.NoError(t, target.db.QueryRow(`SELECT COUNT(*) FROM match_lineups`).Scan(&count))
	assert.Equal(t, 2, count)
	require.NoError(t, target.db.QueryRow(`SELECT COUNT(*) FROM substitutions`).Scan(&count))
	assert.Equal(t, 1, count)

	var teamName string
	require.NoError(t, target.db.QueryRow(`SELECT team_name FROM team_settings WHERE id = 1`).Scan(&teamName))
	assert.Equal(t, "Riverside FC", teamName)
}

func TestSQLiteTargetRerunUpserts(t *testing.T) {
	target, err := OpenSQLiteTarget(filepath.Join(t.TempDir(), "club.db"))
	require.NoError(t, err)
	defer target.Close()

	s := seededStore(t, seedDocument(t))
	bridge := NewBridge(s, target)

	first := bridge.Migrate(context.Background())
	second := bridge.Migrate(context.Background())
	assert.True(t, first.Success)
	assert.True(t, second.Success)

	// Re-running migrates the same rows without duplicating them.
	var count int
	require.NoError(t, target.db.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&count))
	assert.Equal(t, 2, count)
	require.NoError(t, target.db.QueryRow(`SELECT COUNT(*) FROM substitutions`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestParseDate(t *testing.T) {
	_, err := parseDate("2026-03-14")
	assert.NoError(t, err)

	for _, bad := range []string{"", "14/03/2026", "2026-13-40", "soon"} {
		_, err := parseDate(bad)
		assert.Error(t, err, "date %q must not parse", bad)
	}
}
