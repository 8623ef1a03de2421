package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
)

// flexInt accepts either a JSON number or a numeric string; the web client
// posts select-box values such as "1".
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		*n = flexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}

func (n *flexInt) intPtr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

// questionsRequest is the body of POST /questions: either a search or a new
// question.
type questionsRequest struct {
	SearchTerm *string  `json:"searchTerm"`
	Question   *string  `json:"question"`
	Answer     *string  `json:"answer"`
	Difficulty *flexInt `json:"difficulty"`
	Category   *flexInt `json:"category"`
}

// decodeQuestionsRequest reads a POST /questions body. Only bytes that are not
// JSON at all fail with a syntax error; a search ignores every other field, and
// a wrongly typed create field is reported after the branch is known.
func decodeQuestionsRequest(body io.Reader) (questionsRequest, error) {
	var (
		req    questionsRequest
		fields map[string]json.RawMessage
	)
	if err := decodeBody(body, &fields); err != nil {
		return req, err
	}

	var term string
	if raw, ok := fields["searchTerm"]; ok && json.Unmarshal(raw, &term) == nil {
		req.SearchTerm = &term
	}
	if req.isSearch() {
		return req, nil
	}

	targets := []struct {
		key string
		dst interface{}
	}{
		{"question", &req.Question},
		{"answer", &req.Answer},
		{"difficulty", &req.Difficulty},
		{"category", &req.Category},
	}
	for _, f := range targets {
		raw, ok := fields[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return req, &fieldError{Field: f.key, Err: err}
		}
	}
	return req, nil
}

// fieldError reports a create field that is valid JSON of the wrong type.
type fieldError struct {
	Field string
	Err   error
}

func (e *fieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *fieldError) Unwrap() error { return e.Err }

// isMalformedJSON reports whether err came from bytes that are not JSON.
func isMalformedJSON(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

func (r questionsRequest) isSearch() bool {
	return r.SearchTerm != nil && *r.SearchTerm != ""
}

func (r questionsRequest) draft() QuestionDraft {
	return QuestionDraft{
		Question:   r.Question,
		Answer:     r.Answer,
		Difficulty: r.Difficulty.intPtr(),
		Category:   r.Category.intPtr(),
	}
}

type quizCategoryRequest struct {
	ID   *flexInt `json:"id"`
	Type string   `json:"type"`
}

// quizRequest is the body of POST /quizzes. Both fields are required.
type quizRequest struct {
	PreviousQuestions *[]flexInt           `json:"previous_questions"`
	QuizCategory      *quizCategoryRequest `json:"quiz_category"`
}

var errMissingQuizField = errors.New("previous_questions and quiz_category.id are required")

func (r quizRequest) toQuizRequest() (QuizRequest, error) {
	if r.PreviousQuestions == nil || r.QuizCategory == nil || r.QuizCategory.ID == nil {
		return QuizRequest{}, errMissingQuizField
	}
	previous := make([]int, 0, len(*r.PreviousQuestions))
	for _, id := range *r.PreviousQuestions {
		previous = append(previous, int(id))
	}
	return QuizRequest{CategoryID: int(*r.QuizCategory.ID), Previous: previous}, nil
}

// decodeBody decodes a JSON object into dst. An empty body leaves dst untouched.
func decodeBody(body io.Reader, dst interface{}) error {
	if body == nil {
		return nil
	}
	err := json.NewDecoder(body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
