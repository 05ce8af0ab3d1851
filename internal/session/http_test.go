package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(store Store) *http.ServeMux {
	handler := NewHTTPHandler(store, zerolog.Nop())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", handler.HandleCreate)
	mux.HandleFunc("GET /sessions", handler.HandleList)
	mux.HandleFunc("DELETE /sessions/{token}", handler.HandleDelete)
	return mux
}

func TestHandleCreateReturnsToken(t *testing.T) {
	store := NewMemoryStore()
	mux := newTestMux(store)

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))

	token := rec.Body.String()
	require.NotEmpty(t, token)

	ok, err := store.Exists(req.Context(), token)
	require.NoError(t, err)
	assert.True(t, ok, "returned token must be backed by a record")
}

func TestHandleListReturnsAllTokens(t *testing.T) {
	store := NewMemoryStore()
	mux := newTestMux(store)

	first, err := store.Create(t.Context())
	require.NoError(t, err)
	second, err := store.Create(t.Context())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var tokens []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tokens))
	assert.ElementsMatch(t, []string{first, second}, tokens)
}

func TestHandleListEmptyIsJSONArray(t *testing.T) {
	mux := newTestMux(NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleDelete(t *testing.T) {
	store := NewMemoryStore()
	mux := newTestMux(store)

	token, err := store.Create(t.Context())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/"+token, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	ok, err := store.Exists(t.Context(), token)
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting again is a 404
	req = httptest.NewRequest(http.MethodDelete, "/sessions/"+token, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
