package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]queries.Category, error)
	GetCategory(ctx context.Context, id int32) (queries.Category, error)
}

// CategoryRepository is read-only: categories are seeded by migrations.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) List(ctx context.Context) ([]queries.Category, error) {
	return r.store.ListCategories(ctx)
}

func (r *CategoryRepository) Get(ctx context.Context, id int32) (queries.Category, error) {
	c, err := r.store.GetCategory(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return queries.Category{}, ErrNotFound
	}
	return c, err
}
