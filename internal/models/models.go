package models

import (
	"fmt"
)

type MatchType string

const (
	MatchLeague   MatchType = "league"
	MatchCup      MatchType = "cup"
	MatchFriendly MatchType = "friendly"
	MatchTraining MatchType = "training"
)

type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	Position string `json:"position,omitempty"`
}

type Substitution struct {
	ID     string `json:"id"`
	Minute int    `json:"minute"`
	Out    string `json:"out"` // player ID leaving the pitch
	In     string `json:"in"`  // player ID coming on
	Reason string `json:"reason,omitempty"`
}

// SubMatch is one leg of a multi-match day (e.g. a tournament where the
// club plays several short games back to back).
type SubMatch struct {
	ID           string `json:"id"`
	Opponent     string `json:"opponent"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	Notes        string `json:"notes,omitempty"`
}

type Match struct {
	ID            string            `json:"id"`
	Date          string            `json:"date"` // YYYY-MM-DD
	Type          MatchType         `json:"type"`
	Opponent      string            `json:"opponent"`
	Venue         string            `json:"venue"`
	GoalsFor      int               `json:"goalsFor"`
	GoalsAgainst  int               `json:"goalsAgainst"`
	MVP           string            `json:"mvp"`
	Notes         string            `json:"notes"`
	Formation     string            `json:"formation"`
	Lineup        map[string]string `json:"lineup"` // position label -> player ID, "" when unassigned
	Photos        []string          `json:"photos"`
	YoutubeURL    string            `json:"youtubeUrl"`
	Substitutions []Substitution    `json:"substitutions"`
	IsMultiMatch  bool              `json:"isMultiMatch"`
	SubMatches    []SubMatch        `json:"subMatches"`
}

// LineupRecord is a flattened lineup assignment kept at the document root.
// Older app versions stored lineups separately from matches; the collection
// is carried so nothing is dropped on load/save round trips.
type LineupRecord struct {
	MatchID   string `json:"matchId"`
	Position  string `json:"position"`
	PlayerID  string `json:"playerId"`
	IsStarter bool   `json:"isStarter"`
}

type SubRecord struct {
	ID      string `json:"id"`
	MatchID string `json:"matchId"`
	Minute  int    `json:"minute"`
	Out     string `json:"out"`
	In      string `json:"in"`
	Reason  string `json:"reason,omitempty"`
}

type PhotoRecord struct {
	ID      string `json:"id"`
	MatchID string `json:"matchId"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type CommentRecord struct {
	ID        string `json:"id"`
	MatchID   string `json:"matchId"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type UniformColors struct {
	Shirt  string `json:"shirt"`
	Shorts string `json:"shorts"`
	Socks  string `json:"socks"`
}

type UniformSet struct {
	FieldPlayer UniformColors `json:"fieldPlayer"`
	Goalkeeper  UniformColors `json:"goalkeeper"`
}

type UniformSettings struct {
	HomeSetID string `json:"homeSetId,omitempty"`
	AwaySetID string `json:"awaySetId,omitempty"`
}

type TeamSettings struct {
	TeamName       string `json:"teamName"`
	PrimaryColor   string `json:"primaryColor"`
	LogoURL        string `json:"logoUrl"`
	HeaderImageURL string `json:"headerImageUrl"`
}

// Document is the single root structure holding all locally persisted club
// state. After store.Load every collection is non-nil, so consumers never
// branch on key presence.
type Document struct {
	Players         []Player              `json:"players"`
	Matches         []Match               `json:"matches"`
	Lineups         []LineupRecord        `json:"lineups"`
	Subs            []SubRecord           `json:"subs"`
	Photos          []PhotoRecord         `json:"photos"`
	Comments        []CommentRecord       `json:"comments"`
	TeamUniforms    map[string]UniformSet `json:"teamUniforms"`
	UniformSettings UniformSettings       `json:"uniformSettings"`
	TeamSettings    TeamSettings          `json:"teamSettings"`
}

// DefaultDocument returns a structurally complete empty document.
func DefaultDocument() *Document {
	d := &Document{}
	d.EnsureDefaults()
	return d
}

// EnsureDefaults fills any collection the persisted payload was missing.
// Persisted values always win; only nil fields are replaced.
func (d *Document) EnsureDefaults() {
	if d.Players == nil {
		d.Players = []Player{}
	}
	if d.Matches == nil {
		d.Matches = []Match{}
	}
	if d.Lineups == nil {
		d.Lineups = []LineupRecord{}
	}
	if d.Subs == nil {
		d.Subs = []SubRecord{}
	}
	if d.Photos == nil {
		d.Photos = []PhotoRecord{}
	}
	if d.Comments == nil {
		d.Comments = []CommentRecord{}
	}
	if d.TeamUniforms == nil {
		d.TeamUniforms = map[string]UniformSet{}
	}
	for i := range d.Matches {
		if d.Matches[i].Lineup == nil {
			d.Matches[i].Lineup = map[string]string{}
		}
		if d.Matches[i].Photos == nil {
			d.Matches[i].Photos = []string{}
		}
		if d.Matches[i].Substitutions == nil {
			d.Matches[i].Substitutions = []Substitution{}
		}
		if d.Matches[i].SubMatches == nil {
			d.Matches[i].SubMatches = []SubMatch{}
		}
	}
}

// Formations maps a formation name to its ordered position labels.
// Labels are shared across formations where the role is the same, so
// switching formation keeps players assigned to common positions.
var Formations = map[string][]string{
	"4-4-2":   {"GK", "LB", "CB1", "CB2", "RB", "LM", "CM1", "CM2", "RM", "ST1", "ST2"},
	"4-3-3":   {"GK", "LB", "CB1", "CB2", "RB", "CM1", "CM2", "CM3", "LW", "ST1", "RW"},
	"3-5-2":   {"GK", "CB1", "CB2", "CB3", "LM", "CM1", "CM2", "CM3", "RM", "ST1", "ST2"},
	"4-2-3-1": {"GK", "LB", "CB1", "CB2", "RB", "DM1", "DM2", "AM1", "AM2", "AM3", "ST1"},
}

// FormationPositions returns the position labels for a formation name,
// or nil if the formation is unknown.
func FormationPositions(name string) []string {
	return Formations[name]
}

// SetFormation switches the match to a new formation. Players assigned to
// position labels present in both the old and new formation are kept;
// every other slot starts empty.
func (m *Match) SetFormation(name string) error {
	positions := FormationPositions(name)
	if positions == nil {
		return fmt.Errorf("unknown formation %q", name)
	}

	lineup := make(map[string]string, len(positions))
	for _, pos := range positions {
		lineup[pos] = m.Lineup[pos]
	}

	m.Formation = name
	m.Lineup = lineup
	return nil
}

// AddSubstitution appends a substitution after validating the minute range
// and that two distinct players are involved.
func (m *Match) AddSubstitution(sub Substitution) error {
	if sub.Minute < 0 || sub.Minute > 120 {
		return fmt.Errorf("substitution minute %d out of range 0-120", sub.Minute)
	}
	if sub.Out == "" || sub.In == "" {
		return fmt.Errorf("substitution requires both an outgoing and an incoming player")
	}
	if sub.Out == sub.In {
		return fmt.Errorf("substitution cannot swap a player for themselves")
	}
	m.Substitutions = append(m.Substitutions, sub)
	return nil
}

// FindPlayerByNumber returns the index of the player wearing the given
// jersey number, or -1.
func (d *Document) FindPlayerByNumber(number int) int {
	for i := range d.Players {
		if d.Players[i].Number == number {
			return i
		}
	}
	return -1
}
