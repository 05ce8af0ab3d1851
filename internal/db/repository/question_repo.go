package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triviahub/trivia-service/internal/question"
)

// QuestionRepository reads the curated question corpus from Postgres.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

var _ question.Source = (*QuestionRepository)(nil)

const listQuestionsSQL = `
SELECT q.question_id, q.difficulty_id, q.category_id, q.text,
       a.answer_id, a.text, a.correct
FROM questions q
JOIN answers a ON a.question_id = q.question_id
ORDER BY q.question_id, a.answer_id`

// ListQuestions returns the full corpus with answers attached. Rows arrive
// grouped by question_id, so answers are folded into the preceding question.
func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]question.Question, error) {
	rows, err := r.pool.Query(ctx, listQuestionsSQL)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		var (
			q question.Question
			a question.Answer
		)
		if err := rows.Scan(&q.QuestionID, &q.DifficultyID, &q.CategoryID, &q.Text,
			&a.AnswerID, &a.Text, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}

		if n := len(questions); n > 0 && questions[n-1].QuestionID == q.QuestionID {
			questions[n-1].Answers = append(questions[n-1].Answers, a)
			continue
		}
		q.Answers = []question.Answer{a}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question rows: %w", err)
	}
	return questions, nil
}

// Insert stores a new corpus question with its answers in one transaction.
// Used by corpus authoring tooling, not by the serving path.
func (r *QuestionRepository) Insert(ctx context.Context, q question.Question) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO questions (question_id, difficulty_id, category_id, text) VALUES ($1, $2, $3, $4)`,
		q.QuestionID, q.DifficultyID, q.CategoryID, q.Text); err != nil {
		return fmt.Errorf("insert question %s: %w", q.QuestionID, err)
	}
	for _, a := range q.Answers {
		if _, err := tx.Exec(ctx,
			`INSERT INTO answers (question_id, answer_id, text, correct) VALUES ($1, $2, $3, $4)`,
			q.QuestionID, a.AnswerID, a.Text, a.Correct); err != nil {
			return fmt.Errorf("insert answer %d for %s: %w", a.AnswerID, q.QuestionID, err)
		}
	}
	return tx.Commit(ctx)
}
