// Package external holds clients for public trivia question banks.
package external

const defaultAmount = 10

// Question is an upstream question with plain-text fields.
type Question struct {
	Category         string
	Difficulty       string
	Question         string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// FetchParams narrows an upstream request. Zero values leave the filter off.
// Category is passed through in the upstream's own vocabulary.
type FetchParams struct {
	Amount     int
	Category   string
	Difficulty string
}

func (p FetchParams) amount(limit int) int {
	if p.Amount <= 0 {
		return defaultAmount
	}
	return min(p.Amount, limit)
}
