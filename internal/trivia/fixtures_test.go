package trivia

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// memoryStore is an in-memory stand-in for both repositories.
type memoryStore struct {
	mu         sync.Mutex
	questions  map[int64]queries.Question
	categories []queries.Category
	nextID     int64
	failWith   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{questions: map[int64]queries.Question{}, nextID: 1}
}

// seededStore holds the six default categories and a handful of questions
// from the shipped seed data.
func seededStore() *memoryStore {
	s := newMemoryStore()
	s.categories = []queries.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
	for _, q := range []queries.Question{
		{ID: 2, Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Difficulty: 4, Category: 5},
		{ID: 4, Question: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", Difficulty: 4, Category: 5},
		{ID: 5, Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Difficulty: 2, Category: 4},
		{ID: 9, Question: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", Difficulty: 1, Category: 4},
		{ID: 10, Question: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", Difficulty: 3, Category: 6},
		{ID: 11, Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", Difficulty: 4, Category: 6},
		{ID: 12, Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", Difficulty: 2, Category: 4},
		{ID: 13, Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Difficulty: 2, Category: 3},
		{ID: 14, Question: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", Difficulty: 3, Category: 3},
		{ID: 15, Question: "The Taj Mahal is located in which Indian city?", Answer: "Agra", Difficulty: 2, Category: 3},
		{ID: 16, Question: "Which Dutch graphic artist-initials M C was a creator of optical illusions?", Answer: "Escher", Difficulty: 1, Category: 2},
		{ID: 17, Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Difficulty: 3, Category: 2},
		{ID: 18, Question: "How many paintings did Van Gogh sell in his lifetime?", Answer: "One", Difficulty: 4, Category: 2},
		{ID: 19, Question: "Which American artist was a pioneer of Abstract Expressionism, and a leading exponent of action painting?", Answer: "Jackson Pollock", Difficulty: 2, Category: 2},
		{ID: 20, Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Difficulty: 4, Category: 1},
		{ID: 21, Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Difficulty: 3, Category: 1},
		{ID: 22, Question: "Hematology is a branch of medicine involving the study of what?", Answer: "Blood", Difficulty: 4, Category: 1},
		{ID: 23, Question: "Which dung beetle was worshipped by the ancient Egyptians?", Answer: "Scarab", Difficulty: 4, Category: 4},
		{ID: 24, Question: "What kind of particle is a gluon?", Answer: "A force carrier", Difficulty: 5, Category: 1},
	} {
		s.questions[q.ID] = q
	}
	s.nextID = 25
	return s
}

func (s *memoryStore) sorted(keep func(queries.Question) bool) ([]queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := []queries.Question{}
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) List(context.Context) ([]queries.Question, error) {
	return s.sorted(func(queries.Question) bool { return true })
}

func (s *memoryStore) Search(_ context.Context, term string) ([]queries.Question, error) {
	needle := strings.ToLower(term)
	return s.sorted(func(q queries.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	})
}

func (s *memoryStore) ListByCategory(_ context.Context, category int32) ([]queries.Question, error) {
	return s.sorted(func(q queries.Question) bool { return q.Category == category })
}

func (s *memoryStore) Get(_ context.Context, id int64) (queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return queries.Question{}, s.failWith
	}
	q, ok := s.questions[id]
	if !ok {
		return queries.Question{}, repository.ErrNotFound
	}
	return q, nil
}

func (s *memoryStore) Insert(_ context.Context, p queries.InsertQuestionParams) (queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return queries.Question{}, s.failWith
	}
	q := queries.Question{ID: s.nextID, Question: p.Question, Answer: p.Answer, Difficulty: p.Difficulty, Category: p.Category}
	s.questions[q.ID] = q
	s.nextID++
	return q, nil
}

func (s *memoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.questions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

// memoryCategories adapts memoryStore to the category repository.
type memoryCategories struct {
	store *memoryStore
	calls int
}

func (c *memoryCategories) List(context.Context) ([]queries.Category, error) {
	c.calls++
	if c.store.failWith != nil {
		return nil, c.store.failWith
	}
	return append([]queries.Category(nil), c.store.categories...), nil
}

func (c *memoryCategories) Get(_ context.Context, id int32) (queries.Category, error) {
	for _, cat := range c.store.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return queries.Category{}, repository.ErrNotFound
}

type memoryCache struct {
	cats   Categories
	getErr error
}

func (c *memoryCache) Get(context.Context) (Categories, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.cats, nil
}

func (c *memoryCache) Set(_ context.Context, cats Categories) error {
	c.cats = cats
	return nil
}

type countingMetrics struct {
	found, exhausted int
	cache            map[string]int
}

func (m *countingMetrics) QuizSelection(found bool) {
	if found {
		m.found++
		return
	}
	m.exhausted++
}

func (m *countingMetrics) CategoryCache(result string) {
	if m.cache == nil {
		m.cache = map[string]int{}
	}
	m.cache[result]++
}

var errStorage = errors.New("connection reset by peer")

func newTestService(store *memoryStore, opts ServiceOptions) (*Service, *memoryCategories) {
	cats := &memoryCategories{store: store}
	return NewService(store, cats, opts), cats
}
