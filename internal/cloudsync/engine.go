package cloudsync

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"club-backend/internal/importer"
	"club-backend/internal/models"
	"club-backend/internal/store"
)

// Outcome classifications reported to callers.
const (
	ActionImported = "imported"
	ActionNoChange = "no_change"
	ActionNoData   = "no_data"
	ActionSaved    = "saved"
)

// SyncResult is the caller-facing outcome of a sync operation. Failures are
// carried in Error; the engine never surfaces them any other way.
type SyncResult struct {
	Success bool   `json:"success"`
	Action  string `json:"action,omitempty"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
	Version int64  `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Engine reconciles the local player collection with a remote one. Unlike
// the file importer, which matches on jersey number alone, the engine also
// matches on id when the remote row carries one.
type Engine struct {
	store  store.Store
	remote Remote
}

func NewEngine(s store.Store, r Remote) *Engine {
	return &Engine{store: s, remote: r}
}

// SyncWithCloud fetches the remote collection and integrates it into the
// local store. An empty remote is reported as no_change without touching
// local state; a merge that changes nothing also collapses to no_change.
func (e *Engine) SyncWithCloud(ctx context.Context) SyncResult {
	return e.pull(ctx, false)
}

// SyncFromCloudUpsert runs the same pipeline but always reports the actual
// outcome: an empty remote is surfaced as no_data so a user-initiated
// "sync now" gets explicit confirmation.
func (e *Engine) SyncFromCloudUpsert(ctx context.Context) SyncResult {
	return e.pull(ctx, true)
}

func (e *Engine) pull(ctx context.Context, explicit bool) SyncResult {
	snap, err := e.remote.Fetch(ctx)
	if err != nil {
		return SyncResult{Error: err.Error()}
	}

	if len(snap.Players) == 0 {
		if explicit {
			return SyncResult{Success: true, Action: ActionNoData, Message: "remote has no players"}
		}
		return SyncResult{Success: true, Action: ActionNoChange}
	}

	var added, updated int
	err = e.store.Update(ctx, func(doc *models.Document) error {
		added, updated = upsertPlayers(doc, snap.Players)
		return nil
	})
	if err != nil {
		return SyncResult{Error: fmt.Sprintf("updating local store: %v", err)}
	}

	if added == 0 && updated == 0 {
		return SyncResult{Success: true, Action: ActionNoChange}
	}
	return SyncResult{Success: true, Action: ActionImported, Added: added, Updated: updated, Version: snap.Version}
}

// SavePlayersToCloud pushes the full local player list to the remote write
// endpoint. Purely a forwarding call; local state is not mutated.
func (e *Engine) SavePlayersToCloud(ctx context.Context, credential string) SyncResult {
	doc, err := e.store.Load(ctx)
	if err != nil {
		return SyncResult{Error: fmt.Sprintf("loading local store: %v", err)}
	}

	snap, err := e.remote.Save(ctx, doc.Players, credential)
	if err != nil {
		return SyncResult{Error: err.Error()}
	}

	return SyncResult{
		Success: true,
		Action:  ActionSaved,
		Version: snap.Version,
		Message: fmt.Sprintf("saved %d players", len(doc.Players)),
	}
}

// upsertPlayers merges validated remote rows into the document. Incoming
// fields win on a match, but an established local id is never overwritten.
// A row only counts as updated when the merge actually changed the record.
func upsertPlayers(doc *models.Document, rows []RemotePlayer) (added, updated int) {
	index := make(map[string]int, len(doc.Players)*2)
	for i, p := range doc.Players {
		if p.ID != "" {
			index["id:"+p.ID] = i
		}
		index["jersey:"+strconv.Itoa(p.Number)] = i
	}

	for _, row := range rows {
		if !row.valid() {
			continue
		}
		key, ok := row.matchKey()
		if !ok {
			// Unreachable after validation, kept for rows merged through
			// other entry points: no id or jersey/number to match on.
			continue
		}

		number, hasNumber := remoteNumber(row)

		i, found := index[key]
		if !found && hasNumber {
			// A row keyed by id can still collide with a local jersey.
			i, found = index["jersey:"+strconv.Itoa(number)]
		}

		if found {
			prev := doc.Players[i]
			merged := prev
			merged.Name = row.Name
			if hasNumber {
				merged.Number = number
			}
			if row.Position != "" {
				merged.Position = row.Position
			}
			if merged.ID == "" {
				if id := row.id(); id != "" {
					merged.ID = id
				} else {
					merged.ID = uuid.New().String()
				}
			}
			doc.Players[i] = merged
			if merged != prev {
				updated++
			}
			index["id:"+merged.ID] = i
			index["jersey:"+strconv.Itoa(merged.Number)] = i
			continue
		}

		p := models.Player{
			ID:       row.id(),
			Name:     row.Name,
			Number:   number,
			Position: row.Position,
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		doc.Players = append(doc.Players, p)
		added++
		i = len(doc.Players) - 1
		index["id:"+p.ID] = i
		index["jersey:"+strconv.Itoa(p.Number)] = i
	}

	return added, updated
}

func remoteNumber(row RemotePlayer) (int, bool) {
	if row.Jersey.Set {
		if n, ok := importer.ParseJersey(row.Jersey.Raw); ok {
			return n, true
		}
	}
	if row.Number.Set {
		if n, ok := importer.ParseJersey(row.Number.Raw); ok {
			return n, true
		}
	}
	return 0, false
}
