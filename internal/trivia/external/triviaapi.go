package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTriviaAPIURL = "https://the-trivia-api.com/api"
	triviaAPIMaxAmount  = 50
)

// TriviaAPIClient fetches questions from The Trivia API. The key is optional.
type TriviaAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewTriviaAPIClient(baseURL, apiKey string, httpClient *http.Client) *TriviaAPIClient {
	if baseURL == "" {
		baseURL = defaultTriviaAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &TriviaAPIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type triviaAPIQuestion struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Question   string   `json:"question"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type"`
	Correct    string   `json:"correctAnswer"`
	Incorrect  []string `json:"incorrectAnswers"`
}

// Fetch requests up to 50 questions. p.Category is a category slug such as
// "science" or "film_and_tv".
func (c *TriviaAPIClient) Fetch(ctx context.Context, p FetchParams) ([]Question, error) {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(p.amount(triviaAPIMaxAmount)))
	if p.Category != "" {
		values.Set("categories", p.Category)
	}
	if p.Difficulty != "" {
		values.Set("difficulty", p.Difficulty)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/questions?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("triviaapi non-200: %d", resp.StatusCode)
	}

	var payload []triviaAPIQuestion
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode triviaapi response: %w", err)
	}

	out := make([]Question, 0, len(payload))
	for _, q := range payload {
		out = append(out, Question{
			Category:         q.Category,
			Difficulty:       q.Difficulty,
			Question:         q.Question,
			CorrectAnswer:    q.Correct,
			IncorrectAnswers: q.Incorrect,
		})
	}
	return out, nil
}
