package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"vibedj/internal/ai"
	"vibedj/internal/playlist"
	"vibedj/internal/shared"
	"vibedj/internal/tasks"
)

// Recorder persists request outcomes for the history command. Optional;
// failures are logged and never surfaced to API callers.
type Recorder interface {
	Save(kind, label string, payload any) (string, error)
}

// GenerateRequest is the body of POST /api/playlist/generate.
type GenerateRequest struct {
	Vibe string `json:"vibe"`
}

// AssembleRequest is the body of POST /api/playlist/assemble.
type AssembleRequest struct {
	AccessToken  string                `json:"accessToken"`
	PlaylistData tasks.AssemblyRequest `json:"playlistData"`
}

// errorBody is the JSON error envelope for non-200 responses.
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// PlaylistHandler serves the playlist JSON API.
type PlaylistHandler struct {
	generator ai.Generator
	engine    *tasks.AssemblyEngine
	recorder  Recorder
	logger    *log.Logger
}

// NewPlaylistHandler creates the API handler. generator may be nil (generation
// degrades straight to the fallback catalog); recorder may be nil (no history).
func NewPlaylistHandler(generator ai.Generator, engine *tasks.AssemblyEngine, recorder Recorder, logger *log.Logger) *PlaylistHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PlaylistHandler{
		generator: generator,
		engine:    engine,
		recorder:  recorder,
		logger:    logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{"/api/playlist/generate", "/api/playlist/assemble", "/health"}
}

// ServeHTTP dispatches to the endpoint implementations.
func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/health":
		h.health(w, r)
	case "/api/playlist/generate":
		h.generate(w, r)
	case "/api/playlist/assemble":
		h.assemble(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *PlaylistHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generate turns a vibe description into a playlist.
//
// This endpoint never fails from the caller's perspective: generation or
// parsing failure silently substitutes the themed fallback catalog and the
// response is always 200 with a playlist body.
func (h *PlaylistHandler) generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Vibe == "" {
		req.Vibe = "general"
	}

	result := h.generatePlaylist(r.Context(), req.Vibe)

	if h.recorder != nil {
		if _, err := h.recorder.Save("generate", req.Vibe, result); err != nil {
			h.logger.Warn("failed to record generation", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// generatePlaylist runs the model + parser pipeline, degrading to the
// fallback catalog when the model call fails or parsing yields no songs.
func (h *PlaylistHandler) generatePlaylist(ctx context.Context, vibe string) playlist.Playlist {
	if h.generator == nil {
		h.logger.Warn("no generator configured, serving fallback", "vibe", vibe)
		return playlist.Fallback(vibe)
	}

	text, err := h.generator.Generate(ctx, ai.BuildPrompt(vibe))
	if err != nil {
		h.logger.Warn("generation failed, serving fallback", "vibe", vibe, "error", err)
		return playlist.Fallback(vibe)
	}

	parsed := playlist.Parse(text)
	if parsed.Empty() {
		h.logger.Warn("no songs parsed, serving fallback", "vibe", vibe)
		return playlist.Fallback(vibe)
	}

	parsed.ApplyDefaults()
	h.logger.Info("playlist generated", "vibe", vibe, "songs", len(parsed.Songs))
	return parsed
}

func (h *PlaylistHandler) assemble(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	var req AssembleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body", Code: "INVALID_REQUEST"})
		return
	}

	if req.AccessToken == "" || req.PlaylistData.Name == "" {
		writeError(w, http.StatusBadRequest, errorBody{Error: "missing access token or playlist data", Code: "INVALID_REQUEST"})
		return
	}

	result, err := h.engine.Assemble(r.Context(), nil, req.AccessToken, req.PlaylistData)
	if err != nil {
		h.logger.Error("assembly failed", "playlist", req.PlaylistData.Name, "error", err)

		switch {
		case errors.Is(err, shared.ErrTokenExpired), errors.Is(err, shared.ErrNotAuthenticated):
			writeError(w, http.StatusUnauthorized, errorBody{
				Error:   "access token expired or invalid",
				Code:    "TOKEN_EXPIRED",
				Message: "Please reconnect your Spotify account",
			})
		case errors.Is(err, shared.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, errorBody{Error: err.Error(), Code: "INVALID_REQUEST"})
		case errors.Is(err, shared.ErrPlaylistCreation):
			writeError(w, http.StatusInternalServerError, errorBody{
				Error: "failed to create playlist",
				Code:  "PLAYLIST_CREATION_FAILED",
			})
		default:
			writeError(w, http.StatusInternalServerError, errorBody{
				Error: "server error during playlist creation",
				Code:  "SERVER_ERROR",
			})
		}
		return
	}

	if h.recorder != nil {
		if _, err := h.recorder.Save("assemble", result.PlaylistName, result); err != nil {
			h.logger.Warn("failed to record assembly", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, body)
}
