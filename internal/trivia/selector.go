package trivia

import "math/rand"

// Selector picks a uniformly random question that the player has not seen.
//
// The pool is shuffled into a uniformly random permutation and scanned for
// the first unseen id, so every unseen question is equally likely without
// building the unseen subset first. Nothing is kept between calls.
type Selector struct {
	shuffle func(n int, swap func(i, j int))
}

func NewSelector() *Selector {
	return &Selector{shuffle: rand.Shuffle}
}

// Select returns the chosen question, or false when every question in pool
// has already been asked (including an empty pool).
func (s *Selector) Select(pool []Question, previous map[int]struct{}) (Question, bool) {
	candidates := make([]Question, len(pool))
	copy(candidates, pool)

	s.shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, q := range candidates {
		if _, seen := previous[q.ID]; !seen {
			return q, true
		}
	}
	return Question{}, false
}

func idSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
