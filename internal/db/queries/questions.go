package queries

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

const questionColumns = `id, question, answer, difficulty, category`

const listQuestions = `
SELECT ` + questionColumns + `
FROM questions
ORDER BY id;
`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

const searchQuestions = `
SELECT ` + questionColumns + `
FROM questions
WHERE question ILIKE '%' || $1 || '%' ESCAPE '\'
ORDER BY id;
`

// SearchQuestions matches term as a literal, case-insensitive substring of the
// question text.
func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	rows, err := q.db.Query(ctx, searchQuestions, EscapeLike(term))
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

const listQuestionsByCategory = `
SELECT ` + questionColumns + `
FROM questions
WHERE category = $1
ORDER BY id;
`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, category int32) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByCategory, category)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

const getQuestion = `
SELECT ` + questionColumns + `
FROM questions
WHERE id = $1;
`

func (q *Queries) GetQuestion(ctx context.Context, id int64) (Question, error) {
	row := q.db.QueryRow(ctx, getQuestion, id)
	var out Question
	err := row.Scan(&out.ID, &out.Question, &out.Answer, &out.Difficulty, &out.Category)
	return out, err
}

type InsertQuestionParams struct {
	Question   string
	Answer     string
	Difficulty int32
	Category   int32
}

const insertQuestion = `
INSERT INTO questions (question, answer, difficulty, category)
VALUES ($1, $2, $3, $4)
RETURNING ` + questionColumns + `;
`

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	row := q.db.QueryRow(ctx, insertQuestion, arg.Question, arg.Answer, arg.Difficulty, arg.Category)
	var out Question
	err := row.Scan(&out.ID, &out.Question, &out.Answer, &out.Difficulty, &out.Category)
	return out, err
}

const deleteQuestion = `
DELETE FROM questions
WHERE id = $1;
`

// DeleteQuestion reports how many rows were removed (0 or 1).
func (q *Queries) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func collectQuestions(rows pgx.Rows) ([]Question, error) {
	defer rows.Close()

	var items []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Difficulty, &q.Category); err != nil {
			return nil, err
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralises LIKE wildcards so the term only matches literally.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
