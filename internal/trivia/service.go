package trivia

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

type questionRepository interface {
	List(ctx context.Context) ([]queries.Question, error)
	Search(ctx context.Context, term string) ([]queries.Question, error)
	ListByCategory(ctx context.Context, category int32) ([]queries.Question, error)
	Get(ctx context.Context, id int64) (queries.Question, error)
	Insert(ctx context.Context, params queries.InsertQuestionParams) (queries.Question, error)
	Delete(ctx context.Context, id int64) error
}

type categoryRepository interface {
	List(ctx context.Context) ([]queries.Category, error)
	Get(ctx context.Context, id int32) (queries.Category, error)
}

// Metrics receives domain level observations (implemented by internal/metrics).
type Metrics interface {
	QuizSelection(found bool)
	CategoryCache(result string)
}

type nopMetrics struct{}

func (nopMetrics) QuizSelection(bool)   {}
func (nopMetrics) CategoryCache(string) {}

// Service implements the trivia operations on top of the storage gateway.
type Service struct {
	questions  questionRepository
	categories categoryRepository
	cache      CategoryCache
	selector   *Selector
	metrics    Metrics
	logger     zerolog.Logger
}

type ServiceOptions struct {
	Cache    CategoryCache
	Selector *Selector
	Metrics  Metrics
	Logger   zerolog.Logger
}

func NewService(questions questionRepository, categories categoryRepository, opts ServiceOptions) *Service {
	s := &Service{
		questions:  questions,
		categories: categories,
		cache:      opts.Cache,
		selector:   opts.Selector,
		metrics:    opts.Metrics,
		logger:     opts.Logger.With().Str("component", "trivia_service").Logger(),
	}
	if s.cache == nil {
		s.cache = noCache{}
	}
	if s.selector == nil {
		s.selector = NewSelector()
	}
	if s.metrics == nil {
		s.metrics = nopMetrics{}
	}
	return s
}

// Categories returns every category ordered by id. An empty set is not-found.
func (s *Service) Categories(ctx context.Context) (Categories, error) {
	cached, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		s.metrics.CategoryCache("error")
		s.logger.Warn().Err(err).Msg("category cache read failed")
	case len(cached) > 0:
		s.metrics.CategoryCache("hit")
		return cached, nil
	default:
		s.metrics.CategoryCache("miss")
	}

	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, newError(KindUnprocessable, "list categories", err)
	}
	if len(rows) == 0 {
		return nil, newError(KindNotFound, "list categories", errNoCategories)
	}

	cats := categoriesFromRows(rows)
	if err := s.cache.Set(ctx, cats); err != nil {
		s.logger.Warn().Err(err).Msg("category cache write failed")
	}
	return cats, nil
}

// ListQuestions returns one page of all questions together with every
// category. An empty page or an empty category set is not-found.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, Categories, error) {
	all, err := s.FindQuestions(ctx, Filter{})
	if err != nil {
		return QuestionPage{}, nil, err
	}
	current := Paginate(all, page)
	if len(current) == 0 {
		return QuestionPage{}, nil, newError(KindNotFound, "list questions", errEmptyPage)
	}

	cats, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, nil, err
	}
	return QuestionPage{Questions: current, Total: len(all)}, cats, nil
}

// SearchQuestions returns one page of the questions whose text contains term.
// Total counts every match, not just the page.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (QuestionPage, error) {
	matches, err := s.FindQuestions(ctx, Search(term))
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{Questions: Paginate(matches, page), Total: len(matches)}, nil
}

// QuestionsByCategory returns one page of the questions in category id. An
// unknown category is a malformed request.
func (s *Service) QuestionsByCategory(ctx context.Context, id, page int) (QuestionPage, Category, error) {
	const op = "questions by category"

	cid, ok := toInt32(id)
	if !ok {
		return QuestionPage{}, Category{}, newError(KindMalformed, op, errUnknownCategory)
	}
	row, err := s.categories.Get(ctx, cid)
	if errors.Is(err, repository.ErrNotFound) {
		return QuestionPage{}, Category{}, newError(KindMalformed, op, errUnknownCategory)
	}
	if err != nil {
		return QuestionPage{}, Category{}, newError(KindUnprocessable, op, err)
	}

	matches, err := s.FindQuestions(ctx, ByCategory(id))
	if err != nil {
		return QuestionPage{}, Category{}, err
	}
	category := Category{ID: int(row.ID), Type: row.Type}
	return QuestionPage{Questions: Paginate(matches, page), Total: len(matches)}, category, nil
}

// GetQuestion looks a single question up by id.
func (s *Service) GetQuestion(ctx context.Context, id int) (Question, error) {
	row, err := s.questions.Get(ctx, int64(id))
	if errors.Is(err, repository.ErrNotFound) {
		return Question{}, newError(KindNotFound, "get question", err)
	}
	if err != nil {
		return Question{}, newError(KindUnprocessable, "get question", err)
	}
	return questionFromRow(row), nil
}

// CreateQuestion stores a new question. Every draft field is required; the
// category is not checked against existing categories.
func (s *Service) CreateQuestion(ctx context.Context, d QuestionDraft) (Question, error) {
	const op = "create question"

	if d.Question == nil || d.Answer == nil || d.Difficulty == nil || d.Category == nil {
		return Question{}, newError(KindUnprocessable, op, errMissingField)
	}
	difficulty, ok1 := toInt32(*d.Difficulty)
	category, ok2 := toInt32(*d.Category)
	if !ok1 || !ok2 {
		return Question{}, newError(KindUnprocessable, op, errors.New("difficulty or category out of range"))
	}

	row, err := s.questions.Insert(ctx, queries.InsertQuestionParams{
		Question:   *d.Question,
		Answer:     *d.Answer,
		Difficulty: difficulty,
		Category:   category,
	})
	if err != nil {
		return Question{}, newError(KindUnprocessable, op, err)
	}
	s.logger.Info().Int64("question_id", row.ID).Int32("category", row.Category).Msg("question created")
	return questionFromRow(row), nil
}

// DeleteQuestion removes a question. Deleting an id that does not exist is
// unprocessable, the same as any other failed delete.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	if err := s.questions.Delete(ctx, int64(id)); err != nil {
		return newError(KindUnprocessable, "delete question", err)
	}
	s.logger.Info().Int("question_id", id).Msg("question deleted")
	return nil
}

// PlayQuiz draws a random question of req.CategoryID (AllCategories for any)
// whose id is not in req.Previous. The bool is false when none is left, which
// is a normal end of the quiz rather than an error.
func (s *Service) PlayQuiz(ctx context.Context, req QuizRequest) (Question, bool, error) {
	f := Filter{}
	if req.CategoryID != AllCategories {
		f = ByCategory(req.CategoryID)
	}
	pool, err := s.FindQuestions(ctx, f)
	if err != nil {
		return Question{}, false, err
	}

	q, found := s.selector.Select(pool, idSet(req.Previous))
	s.metrics.QuizSelection(found)
	return q, found, nil
}

func toInt32(v int) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}
