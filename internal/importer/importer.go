package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/width"

	"club-backend/internal/models"
	"club-backend/internal/store"
)

// Skip reasons for rows that fail validation. Checks run in order and the
// first failure wins, so every skipped row carries exactly one reason.
const (
	ReasonNameEmpty   = "name empty or invalid"
	ReasonJerseyEmpty = "jersey empty or invalid"
)

// Value is a loosely-typed scalar from an uploaded roster file. Jersey
// numbers arrive as JSON strings or numbers, sometimes blank, sometimes
// using full-width numerals.
type Value struct {
	Raw string
	Set bool
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	v.Set = true
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Raw = s
		return nil
	}
	// Numbers and anything else keep their literal text; parsing decides
	// later whether it is usable.
	v.Raw = string(data)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Set {
		return []byte("null"), nil
	}
	return json.Marshal(v.Raw)
}

func (v Value) String() string { return v.Raw }

// Row is one entry of an uploaded roster file.
type Row struct {
	Name   string `json:"name"`
	Jersey Value  `json:"jersey"`
}

// FoldWidth converts full-width characters (e.g. the digits ０-９) to their
// ASCII equivalents.
func FoldWidth(s string) string {
	return width.Fold.String(s)
}

// ParseJersey normalizes and parses a raw jersey value. The number must be
// finite and positive; fractional inputs are truncated.
func ParseJersey(raw string) (int, bool) {
	s := strings.TrimSpace(FoldWidth(raw))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return 0, false
	}
	return int(n), true
}

// Validated is the tagged outcome of row validation: either a player to
// merge, or a skip reason. Bad data is never an error.
type Validated struct {
	OK     bool
	Player models.Player
	Reason string
}

// ValidateRow checks a row in fixed order: name, jersey presence, jersey
// numeric value.
func ValidateRow(row Row) Validated {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return Validated{Reason: ReasonNameEmpty}
	}
	if !row.Jersey.Set || strings.TrimSpace(row.Jersey.Raw) == "" {
		return Validated{Reason: ReasonJerseyEmpty}
	}
	number, ok := ParseJersey(row.Jersey.Raw)
	if !ok {
		return Validated{Reason: fmt.Sprintf("jersey %q is not a valid number", row.Jersey.Raw)}
	}
	return Validated{OK: true, Player: models.Player{Name: name, Number: number}}
}

type SkippedRow struct {
	Row    Row    `json:"row"`
	Reason string `json:"reason"`
}

// Result classifies every input row. Skipped carries the complete list so
// callers can render full diagnostics; truncation for display is the
// caller's business.
type Result struct {
	Added   int          `json:"added"`
	Updated int          `json:"updated"`
	Skipped []SkippedRow `json:"skipped"`
}

// Importer merges uploaded roster rows into the local document.
type Importer struct {
	store store.Store
}

func New(s store.Store) *Importer {
	return &Importer{store: s}
}

// Import validates rows and upserts them by jersey number. A row matching
// an existing player's number overwrites that player's name and number and
// counts as updated; otherwise a new player is created with a fresh ID.
// Re-running the same input is idempotent: the second pass produces only
// updates, never duplicates.
func (imp *Importer) Import(ctx context.Context, rows []Row) (Result, error) {
	result := Result{Skipped: []SkippedRow{}}

	err := imp.store.Update(ctx, func(doc *models.Document) error {
		for _, row := range rows {
			v := ValidateRow(row)
			if !v.OK {
				result.Skipped = append(result.Skipped, SkippedRow{Row: row, Reason: v.Reason})
				continue
			}

			if i := doc.FindPlayerByNumber(v.Player.Number); i >= 0 {
				doc.Players[i].Name = v.Player.Name
				doc.Players[i].Number = v.Player.Number
				result.Updated++
				continue
			}

			doc.Players = append(doc.Players, models.Player{
				ID:     uuid.New().String(),
				Name:   v.Player.Name,
				Number: v.Player.Number,
			})
			result.Added++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}
