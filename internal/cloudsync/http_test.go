package cloudsync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-backend/internal/auth"
	"club-backend/internal/handlers"
	"club-backend/internal/models"
)

func newTestServer(t *testing.T, password string) *httptest.Server {
	t.Helper()
	cred, err := auth.NewCredential(password)
	require.NoError(t, err)

	mux := http.NewServeMux()
	handlers.New(handlers.NewCollectionState(""), cred).RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPRemoteRoundTrip(t *testing.T) {
	srv := newTestServer(t, "club-secret")
	remote := NewHTTPRemote(srv.URL)
	ctx := context.Background()

	snap, err := remote.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Players)
	assert.Equal(t, int64(0), snap.Version)

	players := []models.Player{
		{ID: "p1", Name: "Marta", Number: 10},
		{ID: "p2", Name: "Luis", Number: 9},
	}
	saved, err := remote.Save(ctx, players, "club-secret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)
	assert.False(t, saved.LastUpdated.IsZero())

	snap, err = remote.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Players, 2)
	assert.Equal(t, "Marta", snap.Players[0].Name)
	assert.Equal(t, int64(1), snap.Version)

	// Each successful save increments the version.
	saved, err = remote.Save(ctx, players, "club-secret")
	require.NoError(t, err)
	assert.Equal(t, int64(2), saved.Version)
}

func TestHTTPRemoteBadCredential(t *testing.T) {
	srv := newTestServer(t, "club-secret")
	remote := NewHTTPRemote(srv.URL)

	_, err := remote.Save(context.Background(), nil, "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credential")
}

func TestEngineEndToEndOverHTTP(t *testing.T) {
	srv := newTestServer(t, "club-secret")
	ctx := context.Background()

	// One device pushes its roster.
	source := seededStore(t,
		models.Player{ID: "p1", Name: "Marta", Number: 10},
		models.Player{ID: "p2", Name: "Luis", Number: 9},
	)
	res := NewEngine(source, NewHTTPRemote(srv.URL)).SavePlayersToCloud(ctx, "club-secret")
	require.True(t, res.Success, res.Error)

	// Another device pulls the collection.
	dest := seededStore(t, models.Player{ID: "local-luis", Name: "Luis old", Number: 9})
	res = NewEngine(dest, NewHTTPRemote(srv.URL)).SyncFromCloudUpsert(ctx)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, ActionImported, res.Action)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Updated)

	players := localPlayers(t, dest)
	require.Len(t, players, 2)
	assert.Equal(t, "local-luis", players[0].ID, "established local id survives the merge")
	assert.Equal(t, "Luis", players[0].Name)
}
