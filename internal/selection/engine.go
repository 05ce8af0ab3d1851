package selection

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-service/internal/question"
	"github.com/triviahub/trivia-service/internal/session"
)

// Status is the selection outcome reported to clients in the response body.
type Status int

const (
	StatusOK           Status = 0
	StatusInsufficient Status = 1
	StatusInvalidToken Status = 2
)

// Result carries the outcome and, on StatusOK, exactly Query.Limit questions
// in the order they were collected.
type Result struct {
	Status    Status
	Questions []question.Question
}

// Pool provides the immutable question snapshot the engine scans.
type Pool interface {
	Snapshot() []question.Question
}

// Service selects questions against the corpus while keeping per-session
// delivery records in the store.
type Service struct {
	pool     Pool
	sessions session.Store
	logger   zerolog.Logger
}

func NewService(pool Pool, sessions session.Store, logger zerolog.Logger) *Service {
	return &Service{
		pool:     pool,
		sessions: sessions,
		logger:   logger.With().Str("component", "selection").Logger(),
	}
}

// Select picks up to q.Limit distinct questions matching q's filters,
// excluding everything already delivered to q.Token. Each request scans a
// fresh uniform permutation of the corpus, so no client sees a biased order.
// A selection that cannot fill the limit mutates nothing.
func (s *Service) Select(ctx context.Context, q Query) (Result, error) {
	var delivered map[string]struct{}
	if q.Token != "" {
		ok, err := s.sessions.Exists(ctx, q.Token)
		if err != nil {
			return Result{}, fmt.Errorf("check token: %w", err)
		}
		if !ok {
			return Result{Status: StatusInvalidToken}, nil
		}

		ids, err := s.sessions.Delivered(ctx, q.Token)
		if errors.Is(err, session.ErrNotFound) {
			// deleted between the existence check and the read
			return Result{Status: StatusInvalidToken}, nil
		}
		if err != nil {
			return Result{}, fmt.Errorf("read delivered set: %w", err)
		}
		delivered = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			delivered[id] = struct{}{}
		}
	}

	pool := s.pool.Snapshot()
	// limit is client-controlled and may be arbitrarily large; the scan can
	// never yield more than the pool holds, so cap the preallocation there
	picked := make([]question.Question, 0, min(q.Limit, len(pool)))

	for _, i := range rand.Perm(len(pool)) {
		candidate := pool[i]
		if q.Difficulty != 0 && candidate.DifficultyID != q.Difficulty {
			continue
		}
		if q.Category != 0 && candidate.CategoryID != q.Category {
			continue
		}
		if _, seen := delivered[candidate.QuestionID]; seen {
			continue
		}
		picked = append(picked, candidate)
		if len(picked) == q.Limit {
			break
		}
	}

	if len(picked) < q.Limit {
		return Result{Status: StatusInsufficient}, nil
	}

	if q.Token != "" {
		ids := make([]string, len(picked))
		for i, p := range picked {
			ids[i] = p.QuestionID
		}
		err := s.sessions.AppendDelivered(ctx, q.Token, ids)
		if errors.Is(err, session.ErrNotFound) {
			// session deleted mid-request; treat like any other bad token
			return Result{Status: StatusInvalidToken}, nil
		}
		if err != nil {
			return Result{}, fmt.Errorf("record delivered questions: %w", err)
		}
	}

	return Result{Status: StatusOK, Questions: picked}, nil
}
