package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("not found")

type questionStore interface {
	ListQuestions(ctx context.Context) ([]queries.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]queries.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]queries.Question, error)
	GetQuestion(ctx context.Context, id int64) (queries.Question, error)
	InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error)
	DeleteQuestion(ctx context.Context, id int64) (int64, error)
}

// QuestionRepository wraps the question queries.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]queries.Question, error) {
	return r.store.ListQuestions(ctx)
}

// Search returns questions whose text contains term, ignoring case, ordered by id.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]queries.Question, error) {
	return r.store.SearchQuestions(ctx, term)
}

// ListByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category int32) ([]queries.Question, error) {
	return r.store.ListQuestionsByCategory(ctx, category)
}

func (r *QuestionRepository) Get(ctx context.Context, id int64) (queries.Question, error) {
	q, err := r.store.GetQuestion(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return queries.Question{}, ErrNotFound
	}
	return q, err
}

func (r *QuestionRepository) Insert(ctx context.Context, params queries.InsertQuestionParams) (queries.Question, error) {
	return r.store.InsertQuestion(ctx, params)
}

// Delete removes the question, returning ErrNotFound when no row matched.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
