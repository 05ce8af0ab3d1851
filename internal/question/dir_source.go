package question

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// DirSource reads the corpus from a directory of one-question-per-file JSON
// documents. Files that are not .json or do not parse are skipped with a
// warning so a stray artifact never takes the whole corpus down.
type DirSource struct {
	dir    string
	logger zerolog.Logger
}

func NewDirSource(dir string, logger zerolog.Logger) *DirSource {
	return &DirSource{
		dir:    dir,
		logger: logger.With().Str("component", "corpus_dir").Logger(),
	}
}

var _ Source = (*DirSource)(nil)

func (s *DirSource) ListQuestions(ctx context.Context) ([]Question, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir %s: %w", s.dir, err)
	}

	var questions []Question
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn().Err(err).Str("file", entry.Name()).Msg("skip unreadable question file")
			continue
		}

		var q Question
		if err := json.Unmarshal(data, &q); err != nil {
			s.logger.Warn().Err(err).Str("file", entry.Name()).Msg("skip malformed question file")
			continue
		}
		if q.QuestionID == "" {
			s.logger.Warn().Str("file", entry.Name()).Msg("skip question without id")
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}
