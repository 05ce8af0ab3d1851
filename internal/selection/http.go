package selection

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-service/internal/question"
	httperrors "github.com/triviahub/trivia-service/pkg/http/errors"
)

var selectionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trivia_selection_requests_total",
	Help: "Question selection requests partitioned by outcome status.",
}, []string{"status"})

// questionsResponse is the wire shape of GET /questions. Results is always
// present and empty unless Status is 0.
type questionsResponse struct {
	Status  Status              `json:"status"`
	Results []question.Question `json:"results"`
}

// HTTPHandler serves the question selection endpoint.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "selection_http").Logger(),
	}
}

// HandleGet responds to GET /questions?limit=&difficulty=&category=&token=.
// Insufficient pools and unknown tokens are normal outcomes reported in the
// body status, not HTTP errors; only storage faults surface as 5xx.
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	query := ParseQuery(r.URL.Query())

	result, err := h.svc.Select(r.Context(), query)
	if err != nil {
		h.logger.Error().Err(err).Str("token", query.Token).Msg("selection failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeStorageError, "could not select questions")
		return
	}

	selectionOutcomes.WithLabelValues(strconv.Itoa(int(result.Status))).Inc()

	resp := questionsResponse{
		Status:  result.Status,
		Results: result.Questions,
	}
	if resp.Results == nil {
		resp.Results = []question.Question{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("questions response encode failed")
	}
}
