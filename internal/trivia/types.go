package trivia

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

// AllCategories is the quiz category id meaning "draw from every category".
const AllCategories = 0

// Category is a named grouping of questions.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Categories is ordered by ascending id and encodes as a JSON object
// {"<id>": "<type>"} that keeps that order.
type Categories []Category

func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(cat.ID)))
		buf.WriteByte(':')
		typ, err := json.Marshal(cat.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(typ)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Question is a trivia item as delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}

// QuestionDraft carries the fields required to create a question. Nil means
// the client did not send the field.
type QuestionDraft struct {
	Question   *string
	Answer     *string
	Difficulty *int
	Category   *int
}

// QuestionPage is one page of a question listing plus the size of the full
// result set it was cut from.
type QuestionPage struct {
	Questions []Question
	Total     int
}

// QuizRequest asks for a random question of CategoryID not in Previous.
type QuizRequest struct {
	CategoryID int
	Previous   []int
}

func questionFromRow(row queries.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Difficulty: int(row.Difficulty),
		Category:   int(row.Category),
	}
}

func questionsFromRows(rows []queries.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, questionFromRow(row))
	}
	return out
}

func categoriesFromRows(rows []queries.Category) Categories {
	out := make(Categories, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{ID: int(row.ID), Type: row.Type})
	}
	return out
}
