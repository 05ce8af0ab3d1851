package selection

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triviahub/trivia-service/internal/question"
	"github.com/triviahub/trivia-service/internal/session"
)

type wireResponse struct {
	Status  int               `json:"status"`
	Results []json.RawMessage `json:"results"`
}

func doQuestions(t *testing.T, handler *HTTPHandler, target string) (*httptest.ResponseRecorder, wireResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.HandleGet(rec, req)

	// unmarshal from a copy so rec.Body stays readable for raw assertions
	var body wireResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleGetReturnsQuestions(t *testing.T) {
	svc, _ := newTestService(q("a", 1, 1), q("b", 1, 2), q("c", 2, 1))
	handler := NewHTTPHandler(svc, zerolog.Nop())

	rec, body := doQuestions(t, handler, "/questions?limit=2&difficulty=1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 0, body.Status)
	assert.Len(t, body.Results, 2)
}

func TestHandleGetInsufficientHasEmptyResults(t *testing.T) {
	svc, _ := newTestService(q("only", 1, 1))
	handler := NewHTTPHandler(svc, zerolog.Nop())

	rec, body := doQuestions(t, handler, "/questions?limit=2")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, body.Status)
	assert.NotNil(t, body.Results)
	assert.Empty(t, body.Results)
}

func TestHandleGetInvalidTokenIsBodyStatusNotHTTPError(t *testing.T) {
	svc, _ := newTestService(q("a", 1, 1))
	handler := NewHTTPHandler(svc, zerolog.Nop())

	rec, body := doQuestions(t, handler, "/questions?token=doesnotexist")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, body.Status)
	assert.Empty(t, body.Results)
}

func TestHandleGetResultsNeverNull(t *testing.T) {
	svc, _ := newTestService()
	handler := NewHTTPHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	rec := httptest.NewRecorder()
	handler.HandleGet(rec, req)

	assert.Contains(t, rec.Body.String(), `"results":[]`)
	assert.NotContains(t, rec.Body.String(), "null")
}

func TestHandleGetSessionFlow(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(&fixedPool{questions: []question.Question{q("a", 1, 1), q("b", 1, 1)}}, store, zerolog.Nop())
	handler := NewHTTPHandler(svc, zerolog.Nop())

	token, err := store.Create(t.Context())
	require.NoError(t, err)

	_, first := doQuestions(t, handler, "/questions?limit=1&token="+token)
	require.Equal(t, 0, first.Status)

	_, second := doQuestions(t, handler, "/questions?limit=1&token="+token)
	require.Equal(t, 0, second.Status)

	var firstQ, secondQ question.Question
	require.NoError(t, json.Unmarshal(first.Results[0], &firstQ))
	require.NoError(t, json.Unmarshal(second.Results[0], &secondQ))
	assert.NotEqual(t, firstQ.QuestionID, secondQ.QuestionID)

	// both delivered, third call exhausts the pool
	_, third := doQuestions(t, handler, "/questions?limit=1&token="+token)
	assert.Equal(t, 1, third.Status)
}

func TestHandleGetQuestionWireFormat(t *testing.T) {
	svc, _ := newTestService(q("a", 2, 5))
	handler := NewHTTPHandler(svc, zerolog.Nop())

	rec, _ := doQuestions(t, handler, "/questions?limit=1")

	payload := rec.Body.String()
	for _, field := range []string{`"question_id"`, `"difficulty_id"`, `"category_id"`, `"text"`, `"answers"`} {
		assert.True(t, strings.Contains(payload, field), "response missing %s", field)
	}
}
