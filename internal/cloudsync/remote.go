package cloudsync

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"club-backend/internal/importer"
	"club-backend/internal/models"
)

// RemotePlayer is a loosely-typed player row from the remote collection.
// Rows that are not JSON objects decode to a zero value and are filtered
// out before the merge.
type RemotePlayer struct {
	ID       importer.Value `json:"id"`
	Name     string         `json:"name"`
	Jersey   importer.Value `json:"jersey"`
	Number   importer.Value `json:"number"`
	Position string         `json:"position"`

	object bool
}

func (p *RemotePlayer) UnmarshalJSON(data []byte) error {
	*p = RemotePlayer{}
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return nil
	}
	type alias RemotePlayer
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}
	*p = RemotePlayer(a)
	p.object = true
	return nil
}

func (p RemotePlayer) id() string {
	if !p.ID.Set {
		return ""
	}
	return strings.TrimSpace(p.ID.Raw)
}

// valid reports whether the row is eligible for the merge: a non-null
// object with a non-empty name and at least one of id, jersey or number.
func (p RemotePlayer) valid() bool {
	if !p.object || strings.TrimSpace(p.Name) == "" {
		return false
	}
	return p.id() != "" || p.Jersey.Set || p.Number.Set
}

// matchKey selects the merge key: id first, then jersey, then number.
// Jersey and number deliberately share one key namespace since they are
// the same semantic field.
func (p RemotePlayer) matchKey() (string, bool) {
	if id := p.id(); id != "" {
		return "id:" + id, true
	}
	if p.Jersey.Set {
		return jerseyKey(p.Jersey.Raw), true
	}
	if p.Number.Set {
		return jerseyKey(p.Number.Raw), true
	}
	return "", false
}

// jerseyKey normalizes a raw jersey value so "１０", "10" and 10 all land
// on the same key. Unparseable values key on their trimmed text.
func jerseyKey(raw string) string {
	if n, ok := importer.ParseJersey(raw); ok {
		return "jersey:" + strconv.Itoa(n)
	}
	return "jersey:" + strings.TrimSpace(importer.FoldWidth(raw))
}

// Snapshot is the remote player collection at one version.
type Snapshot struct {
	Players     []RemotePlayer
	LastUpdated time.Time
	Version     int64
}

// Remote is the read/write port to the hosted player collection. Fetch and
// Save return errors for transport or remote-side failures; the engine
// converts them into caller-facing results and never lets them escape.
type Remote interface {
	Fetch(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, players []models.Player, credential string) (*Snapshot, error)
}
