package selection

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueryDefaults(t *testing.T) {
	q := ParseQuery(url.Values{})

	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Zero(t, q.Difficulty)
	assert.Zero(t, q.Category)
	assert.Empty(t, q.Token)
}

func TestParseQueryPermissiveInput(t *testing.T) {
	cases := []struct {
		name string
		raw  url.Values
		want Query
	}{
		{
			name: "all valid",
			raw:  url.Values{"limit": {"5"}, "difficulty": {"2"}, "category": {"12"}, "token": {"abc"}},
			want: Query{Limit: 5, Difficulty: 2, Category: 12, Token: "abc"},
		},
		{
			name: "non numeric limit falls back to default",
			raw:  url.Values{"limit": {"lots"}},
			want: Query{Limit: DefaultLimit},
		},
		{
			name: "zero limit falls back to default",
			raw:  url.Values{"limit": {"0"}},
			want: Query{Limit: DefaultLimit},
		},
		{
			name: "negative limit falls back to default",
			raw:  url.Values{"limit": {"-3"}},
			want: Query{Limit: DefaultLimit},
		},
		{
			name: "difficulty out of range becomes no filter",
			raw:  url.Values{"difficulty": {"4"}},
			want: Query{Limit: DefaultLimit},
		},
		{
			name: "difficulty non integer becomes no filter",
			raw:  url.Values{"difficulty": {"1.5"}},
			want: Query{Limit: DefaultLimit},
		},
		{
			name: "category out of range becomes no filter",
			raw:  url.Values{"category": {"25"}},
			want: Query{Limit: DefaultLimit},
		},
		{
			name: "category zero becomes no filter",
			raw:  url.Values{"category": {"0"}},
			want: Query{Limit: DefaultLimit},
		},
		{
			name: "empty token stays absent",
			raw:  url.Values{"token": {""}},
			want: Query{Limit: DefaultLimit},
		},
		{
			name: "token passed through uninterpreted",
			raw:  url.Values{"token": {"not-a-uuid"}},
			want: Query{Limit: DefaultLimit, Token: "not-a-uuid"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseQuery(tc.raw))
		})
	}
}
