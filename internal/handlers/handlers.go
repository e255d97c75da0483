package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"club-backend/internal/auth"
)

type Handler struct {
	state *CollectionState
	cred  *auth.Credential
}

func New(state *CollectionState, cred *auth.Credential) *Handler {
	return &Handler{state: state, cred: cred}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/players", h.GetPlayers)
	mux.HandleFunc("POST /api/players", auth.RequireCredential(h.cred, h.SavePlayers))
	mux.HandleFunc("GET /api/health", h.Health)
}

type playersData struct {
	Players     []json.RawMessage `json:"players"`
	LastUpdated string            `json:"lastUpdated"`
	Version     int64             `json:"version"`
}

func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players, lastUpdated, version := h.state.Snapshot()
	writeSuccess(w, http.StatusOK, playersData{
		Players:     players,
		LastUpdated: formatTime(lastUpdated),
		Version:     version,
	}, "")
}

type savePlayersRequest struct {
	Players []json.RawMessage `json:"players"`
}

func (h *Handler) SavePlayers(w http.ResponseWriter, r *http.Request) {
	var req savePlayersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	version, lastUpdated, err := h.state.Replace(req.Players)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeSuccess(w, http.StatusOK, playersData{
		Players:     req.Players,
		LastUpdated: formatTime(lastUpdated),
		Version:     version,
	}, "players saved")
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, nil, "ok")
}

type responseEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(responseEnvelope{Success: true, Data: data, Message: message})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(responseEnvelope{Success: false, Message: message})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
