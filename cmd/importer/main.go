package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/triviahub/trivia-service/internal/db/repository"
	"github.com/triviahub/trivia-service/internal/question"
)

// Imports a directory of question JSON files into the Postgres corpus, so a
// file-authored question set can be promoted to the database backend.
func main() {
	dir := flag.String("dir", "questions", "Directory containing question JSON files")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	pgHost := getEnv("PG_HOST", "localhost")
	pgPort := getEnv("PG_PORT", "5432")
	pgUser := getEnv("PG_USER", "")
	pgPassword := getEnv("PG_PASSWORD", "")
	pgDatabase := getEnv("PG_DATABASE", "")
	pgSSLMode := getEnv("PG_SSL_MODE", "disable")

	if pgUser == "" || pgDatabase == "" {
		log.Fatal().Msg("PG_USER and PG_DATABASE environment variables are required")
	}

	connString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		pgHost, pgPort, pgUser, pgPassword, pgDatabase, pgSSLMode)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	source := question.NewDirSource(*dir, log.Logger)
	questions, err := source.ListQuestions(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dir).Msg("failed to read question directory")
	}
	if len(questions) == 0 {
		log.Fatal().Str("dir", *dir).Msg("no question files found")
	}

	repo := repository.NewQuestionRepository(pool)
	imported := 0
	for _, q := range questions {
		if err := repo.Insert(ctx, q); err != nil {
			log.Warn().Err(err).Str("question_id", q.QuestionID).Msg("skip question")
			continue
		}
		imported++
	}

	log.Info().
		Int("imported", imported).
		Int("skipped", len(questions)-imported).
		Msg("corpus import complete")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
