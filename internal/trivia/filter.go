package trivia

import (
	"context"
	"errors"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

// Filter selects questions. At most one predicate may be set; the zero
// value selects every question.
type Filter struct {
	// SearchTerm is matched as a case-insensitive substring of the question text.
	SearchTerm string
	// CategoryID restricts to questions of exactly this category.
	CategoryID *int
}

var errCombinedFilter = errors.New("search term and category filter cannot be combined")

func (f Filter) Validate() error {
	if f.SearchTerm != "" && f.CategoryID != nil {
		return errCombinedFilter
	}
	return nil
}

// ByCategory is a Filter on category id.
func ByCategory(id int) Filter {
	return Filter{CategoryID: &id}
}

// Search is a Filter on question text.
func Search(term string) Filter {
	return Filter{SearchTerm: term}
}

// FindQuestions returns every question matching f in ascending id order. No
// pagination is applied here.
func (s *Service) FindQuestions(ctx context.Context, f Filter) ([]Question, error) {
	if err := f.Validate(); err != nil {
		return nil, newError(KindMalformed, "find questions", err)
	}

	var (
		rows []queries.Question
		err  error
	)
	switch {
	case f.CategoryID != nil:
		cid, ok := toInt32(*f.CategoryID)
		if !ok {
			return []Question{}, nil
		}
		rows, err = s.questions.ListByCategory(ctx, cid)
	case f.SearchTerm != "":
		rows, err = s.questions.Search(ctx, f.SearchTerm)
	default:
		rows, err = s.questions.List(ctx)
	}
	if err != nil {
		return nil, newError(KindUnprocessable, "find questions", err)
	}
	return questionsFromRows(rows), nil
}
