package cloudsync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"club-backend/internal/models"
)

// FirestoreRemote stores the player collection as a single Firestore
// document: {players, lastUpdated, version}. Access is governed by IAM, so
// the caller-supplied credential is not used here.
type FirestoreRemote struct {
	client *firestore.Client
	doc    *firestore.DocumentRef
}

func NewFirestoreRemote(ctx context.Context, projectID, databaseID string, opts ...option.ClientOption) (*FirestoreRemote, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
	} else {
		client, err = firestore.NewClient(ctx, projectID, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &FirestoreRemote{
		client: client,
		doc:    client.Collection("club").Doc("players"),
	}, nil
}

func (r *FirestoreRemote) Close() error {
	return r.client.Close()
}

type firestoreDoc struct {
	Players     []map[string]any `firestore:"players"`
	LastUpdated time.Time        `firestore:"lastUpdated"`
	Version     int64            `firestore:"version"`
}

func (r *FirestoreRemote) Fetch(ctx context.Context) (*Snapshot, error) {
	docSnap, err := r.doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("reading player document: %w", err)
	}

	var d firestoreDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("decoding player document: %w", err)
	}

	// Round-trip through JSON to reuse the loose row decoding.
	raw, err := json.Marshal(d.Players)
	if err != nil {
		return nil, fmt.Errorf("encoding player rows: %w", err)
	}
	var players []RemotePlayer
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, fmt.Errorf("decoding player rows: %w", err)
	}

	return &Snapshot{Players: players, LastUpdated: d.LastUpdated, Version: d.Version}, nil
}

func (r *FirestoreRemote) Save(ctx context.Context, players []models.Player, _ string) (*Snapshot, error) {
	rows, err := playerRows(players)
	if err != nil {
		return nil, err
	}

	var version int64
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(r.doc)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if docSnap != nil && docSnap.Exists() {
			var d firestoreDoc
			if err := docSnap.DataTo(&d); err != nil {
				return err
			}
			version = d.Version
		}
		version++
		return tx.Set(r.doc, map[string]any{
			"players":     rows,
			"lastUpdated": firestore.ServerTimestamp,
			"version":     version,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("saving player document: %w", err)
	}

	return &Snapshot{LastUpdated: time.Now(), Version: version}, nil
}

func playerRows(players []models.Player) ([]map[string]any, error) {
	raw, err := json.Marshal(players)
	if err != nil {
		return nil, fmt.Errorf("encoding players: %w", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decoding players: %w", err)
	}
	return rows, nil
}
