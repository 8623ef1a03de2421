package external

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultOpenTDBURL = "https://opentdb.com"
	// api.php rejects requests for more than 50 questions.
	openTDBMaxAmount = 50
)

// OpenTDBClient fetches questions from the Open Trivia DB (no API key).
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenTDBClient(baseURL string, httpClient *http.Client) *OpenTDBClient {
	if baseURL == "" {
		baseURL = defaultOpenTDBURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &OpenTDBClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// openTDBQuestion is one api.php result. Text fields are HTML-entity encoded.
type openTDBQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

func (q openTDBQuestion) normalize() Question {
	incorrect := make([]string, 0, len(q.IncorrectAnswers))
	for _, a := range q.IncorrectAnswers {
		incorrect = append(incorrect, html.UnescapeString(a))
	}
	return Question{
		Category:         html.UnescapeString(q.Category),
		Difficulty:       q.Difficulty,
		Question:         html.UnescapeString(q.Question),
		CorrectAnswer:    html.UnescapeString(q.CorrectAnswer),
		IncorrectAnswers: incorrect,
	}
}

// ResponseCodeError reports a non-zero response_code from the API.
type ResponseCodeError struct {
	Code int
}

func (e *ResponseCodeError) Error() string {
	reason := "unknown"
	switch e.Code {
	case 1:
		reason = "not enough questions for query"
	case 2:
		reason = "invalid parameter"
	case 3:
		reason = "session token not found"
	case 4:
		reason = "session token exhausted"
	case 5:
		reason = "rate limited"
	}
	return fmt.Sprintf("opentdb response code %d: %s", e.Code, reason)
}

type openTDBResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []openTDBQuestion `json:"results"`
}

// Fetch requests up to 50 questions. p.Category must be a numeric OpenTDB
// category id when set.
func (c *OpenTDBClient) Fetch(ctx context.Context, p FetchParams) ([]Question, error) {
	values := url.Values{}
	values.Set("amount", strconv.Itoa(p.amount(openTDBMaxAmount)))
	if p.Category != "" {
		if _, err := strconv.Atoi(p.Category); err != nil {
			return nil, fmt.Errorf("opentdb category must be numeric, got %q", p.Category)
		}
		values.Set("category", p.Category)
	}
	if p.Difficulty != "" {
		values.Set("difficulty", p.Difficulty)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api.php?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opentdb non-200: %d", resp.StatusCode)
	}

	var payload openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode opentdb response: %w", err)
	}
	if payload.ResponseCode != 0 {
		return nil, &ResponseCodeError{Code: payload.ResponseCode}
	}

	out := make([]Question, 0, len(payload.Results))
	for _, q := range payload.Results {
		out = append(out, q.normalize())
	}
	return out, nil
}
