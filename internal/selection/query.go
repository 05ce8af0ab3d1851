package selection

import (
	"net/url"
	"strconv"

	"github.com/triviahub/trivia-service/internal/question"
)

// DefaultLimit applies when the limit parameter is absent or unusable.
const DefaultLimit = 10

// Query is the typed, bounded form of the /questions parameters. Zero values
// for Difficulty and Category mean "no filter"; an empty Token means no
// session is involved.
type Query struct {
	Limit      int
	Difficulty int
	Category   int
	Token      string
}

// ParseQuery normalizes raw query parameters into a Query. Input validation
// is deliberately permissive: out-of-range or non-numeric values degrade to
// the default (limit) or to no-filter (difficulty, category) instead of
// failing the request.
func ParseQuery(values url.Values) Query {
	q := Query{Limit: DefaultLimit}

	if raw := values.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 1 {
			q.Limit = limit
		}
	}
	if raw := values.Get("difficulty"); raw != "" {
		if d, err := strconv.Atoi(raw); err == nil && d >= question.DifficultyMin && d <= question.DifficultyMax {
			q.Difficulty = d
		}
	}
	if raw := values.Get("category"); raw != "" {
		if c, err := strconv.Atoi(raw); err == nil && c >= question.CategoryMin && c <= question.CategoryMax {
			q.Category = c
		}
	}
	q.Token = values.Get("token")

	return q
}
