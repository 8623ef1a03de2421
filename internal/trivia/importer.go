package trivia

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/trivia/external"
)

// QuestionSource is an upstream question bank (implemented by
// external.OpenTDBClient and external.TriviaAPIClient).
type QuestionSource interface {
	Fetch(ctx context.Context, p external.FetchParams) ([]external.Question, error)
}

var importDifficulty = map[string]int{
	"easy":   1,
	"medium": 3,
	"hard":   5,
}

// ImportResult counts what one import run did with the fetched questions.
type ImportResult struct {
	Fetched    int
	Imported   int
	Duplicates int
	// Unmapped questions had a category or difficulty with no local match.
	Unmapped int
}

// Importer copies questions from a QuestionSource into the bank through the
// regular create path.
type Importer struct {
	svc    *Service
	source QuestionSource
	logger zerolog.Logger
}

func NewImporter(svc *Service, source QuestionSource, logger zerolog.Logger) *Importer {
	return &Importer{
		svc:    svc,
		source: source,
		logger: logger.With().Str("component", "trivia_importer").Logger(),
	}
}

func (i *Importer) Import(ctx context.Context, p external.FetchParams) (ImportResult, error) {
	var res ImportResult

	cats, err := i.svc.Categories(ctx)
	if err != nil {
		return res, err
	}
	raw, err := i.source.Fetch(ctx, p)
	if err != nil {
		return res, newError(KindUnprocessable, "fetch upstream questions", err)
	}
	res.Fetched = len(raw)

	for _, rq := range raw {
		text := strings.TrimSpace(rq.Question)
		answer := strings.TrimSpace(rq.CorrectAnswer)

		category, ok := matchCategory(cats, rq.Category)
		difficulty, known := importDifficulty[strings.ToLower(rq.Difficulty)]
		if !ok || !known {
			res.Unmapped++
			i.logger.Debug().Str("category", rq.Category).Str("difficulty", rq.Difficulty).Msg("no local mapping")
			continue
		}

		dup, err := i.exists(ctx, text)
		if err != nil {
			return res, err
		}
		if dup {
			res.Duplicates++
			continue
		}

		if _, err := i.svc.CreateQuestion(ctx, QuestionDraft{
			Question:   &text,
			Answer:     &answer,
			Difficulty: &difficulty,
			Category:   &category.ID,
		}); err != nil {
			return res, err
		}
		res.Imported++
	}

	i.logger.Info().
		Int("fetched", res.Fetched).
		Int("imported", res.Imported).
		Int("duplicates", res.Duplicates).
		Int("unmapped", res.Unmapped).
		Msg("import finished")
	return res, nil
}

func (i *Importer) exists(ctx context.Context, text string) (bool, error) {
	matches, err := i.svc.FindQuestions(ctx, Search(text))
	if err != nil {
		return false, err
	}
	for _, q := range matches {
		if strings.EqualFold(q.Question, text) {
			return true, nil
		}
	}
	return false, nil
}

// categoryAliases maps upstream category names that share no prefix with a
// local category. Keys are lower case; both The Trivia API names and slugs.
var categoryAliases = map[string]string{
	"sport & leisure":   "sports",
	"sport_and_leisure": "sports",
	"film & tv":         "entertainment",
	"film_and_tv":       "entertainment",
	"music":             "entertainment",
}

// matchCategory picks the local category whose type is the longest
// case-insensitive prefix of the upstream name, so "Science: Computers" lands
// in "Science". Aliased names are matched by their alias.
func matchCategory(cats Categories, upstream string) (Category, bool) {
	name := strings.ToLower(strings.TrimSpace(upstream))
	if alias, ok := categoryAliases[name]; ok {
		name = alias
	}
	var (
		best  Category
		found bool
	)
	for _, c := range cats {
		prefix := strings.ToLower(c.Type)
		if prefix == "" || !strings.HasPrefix(name, prefix) {
			continue
		}
		if !found || len(c.Type) > len(best.Type) {
			best, found = c, true
		}
	}
	return best, found
}
