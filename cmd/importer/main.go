// Command importer copies questions from a public trivia bank (Open Trivia DB
// or The Trivia API) into the local bank.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	"github.com/gokatarajesh/trivia-api/internal/trivia/external"
)

func main() {
	var (
		source     = flag.String("source", "opentdb", "Upstream bank: opentdb or triviaapi")
		amount     = flag.Int("amount", 10, "Number of questions to request (max 50)")
		category   = flag.String("category", "", "Upstream category (OpenTDB id or Trivia API slug); empty for any")
		difficulty = flag.String("difficulty", "", "easy, medium or hard; empty for any")
		envFile    = flag.String("env-file", "configs/.env", "dotenv file loaded outside production")
	)
	flag.Parse()

	bootLogger := logging.New("trivia-importer", os.Getenv("APP_ENV"))
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(*envFile); err != nil {
			bootLogger.Warn().Err(err).Str("file", *envFile).Msg("could not load .env file")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env)

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	store := queries.New(pool)
	svc := trivia.NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		trivia.ServiceOptions{Logger: logger},
	)
	httpClient := &http.Client{Timeout: cfg.Importer.HTTPTimeout}
	var upstream trivia.QuestionSource
	switch *source {
	case "opentdb":
		upstream = external.NewOpenTDBClient(cfg.Importer.OpenTDBBaseURL, httpClient)
	case "triviaapi":
		upstream = external.NewTriviaAPIClient(cfg.Importer.TriviaAPIBaseURL, cfg.Importer.TriviaAPIKey, httpClient)
	default:
		logger.Fatal().Str("source", *source).Msg("unknown source. Use: opentdb or triviaapi")
	}

	res, err := trivia.NewImporter(svc, upstream, logger).Import(ctx, external.FetchParams{
		Amount:     *amount,
		Category:   *category,
		Difficulty: *difficulty,
	})
	if err != nil {
		logger.Error().Err(err).Msg("import failed")
		pool.Close()
		os.Exit(1)
	}
	logger.Info().Int("imported", res.Imported).Msg("done")
}
