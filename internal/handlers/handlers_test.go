package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-backend/internal/auth"
)

const testPassword = "club-secret"

func newTestHandler(t *testing.T, statePath string) http.Handler {
	t.Helper()
	cred, err := auth.NewCredential(testPassword)
	require.NoError(t, err)

	mux := http.NewServeMux()
	New(NewCollectionState(statePath), cred).RegisterRoutes(mux)
	return mux
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func doRequest(t *testing.T, h http.Handler, method, path, body, credential string) (int, testEnvelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestGetPlayersEmpty(t *testing.T) {
	h := newTestHandler(t, "")

	code, env := doRequest(t, h, http.MethodGet, "/api/players", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	var data playersData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Players)
	assert.Equal(t, int64(0), data.Version)
	assert.Equal(t, "", data.LastUpdated)
}

func TestSavePlayersRequiresCredential(t *testing.T) {
	h := newTestHandler(t, "")
	body := `{"players":[{"id":"p1","name":"Marta","number":10}]}`

	code, env := doRequest(t, h, http.MethodPost, "/api/players", body, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
	assert.Equal(t, "missing bearer credential", env.Message)

	code, env = doRequest(t, h, http.MethodPost, "/api/players", body, "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid credential", env.Message)

	// Nothing was written either time.
	_, getEnv := doRequest(t, h, http.MethodGet, "/api/players", "", "")
	var data playersData
	require.NoError(t, json.Unmarshal(getEnv.Data, &data))
	assert.Empty(t, data.Players)
}

func TestSavePlayersVersionIncrements(t *testing.T) {
	h := newTestHandler(t, "")

	for want := int64(1); want <= 3; want++ {
		code, env := doRequest(t, h, http.MethodPost, "/api/players",
			`{"players":[{"id":"p1","name":"Marta","number":10}]}`, testPassword)
		require.Equal(t, http.StatusOK, code)
		assert.True(t, env.Success)

		var data playersData
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, want, data.Version)
		assert.NotEmpty(t, data.LastUpdated)
	}
}

func TestSavePlayersBadBody(t *testing.T) {
	h := newTestHandler(t, "")

	code, env := doRequest(t, h, http.MethodPost, "/api/players", `{"players":`, testPassword)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid request body", env.Message)
}

func TestSavePlayersKeepsUnknownFields(t *testing.T) {
	h := newTestHandler(t, "")
	body := `{"players":[{"id":"p1","name":"Marta","number":10,"nickname":"Magica"}]}`

	code, _ := doRequest(t, h, http.MethodPost, "/api/players", body, testPassword)
	require.Equal(t, http.StatusOK, code)

	// Rows are stored as raw JSON, so fields the server does not know about
	// survive the round trip.
	_, env := doRequest(t, h, http.MethodGet, "/api/players", "", "")
	var data playersData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Players, 1)
	assert.Contains(t, string(data.Players[0]), "Magica")
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, "")

	code, env := doRequest(t, h, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "ok", env.Message)
}

func TestStatePersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	h := newTestHandler(t, path)

	body := `{"players":[{"id":"p1","name":"Marta","number":10}]}`
	code, _ := doRequest(t, h, http.MethodPost, "/api/players", body, testPassword)
	require.Equal(t, http.StatusOK, code)

	// A fresh handler over the same file sees the saved collection.
	restarted := newTestHandler(t, path)
	_, env := doRequest(t, restarted, http.MethodGet, "/api/players", "", "")
	var data playersData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Players, 1)
	assert.Equal(t, int64(1), data.Version)
	assert.NotEmpty(t, data.LastUpdated)
}

func TestStateCorruptFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	state := NewCollectionState(path)
	players, _, version := state.Snapshot()
	assert.Empty(t, players)
	assert.Equal(t, int64(0), version)
}
