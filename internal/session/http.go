package session

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/triviahub/trivia-service/pkg/http/errors"
)

// HTTPHandler exposes the session lifecycle endpoints.
type HTTPHandler struct {
	store  Store
	logger zerolog.Logger
}

func NewHTTPHandler(store Store, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		store:  store,
		logger: logger.With().Str("component", "session_http").Logger(),
	}
}

// HandleCreate responds to POST /sessions with the new token as plain text.
func (h *HTTPHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	token, err := h.store.Create(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("session create failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeStorageError, "could not create session")
		return
	}

	h.logger.Info().Str("token", token).Msg("session created")

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(token))
}

// HandleList responds to GET /sessions with a JSON array of all live tokens.
func (h *HTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("session list failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeStorageError, "could not list sessions")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tokens); err != nil {
		h.logger.Error().Err(err).Msg("session list encode failed")
	}
}

// HandleDelete responds to DELETE /sessions/{token}: 200 when a session was
// removed, 404 when no such session existed.
func (h *HTTPHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, "session does not exist")
		return
	}

	existed, err := h.store.Delete(r.Context(), token)
	if err != nil {
		h.logger.Error().Err(err).Str("token", token).Msg("session delete failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeStorageError, "could not delete session")
		return
	}
	if !existed {
		httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, "session does not exist")
		return
	}

	h.logger.Info().Str("token", token).Msg("session removed")

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("session deleted"))
}
