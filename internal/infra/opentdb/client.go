package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"

	"github.com/Mishnah7/quiz-bot/internal/domain"
)

const defaultBaseURL = "https://opentdb.com/api.php"

// Client fetches multiple-choice questions from the Open Trivia Database.
// Every malformed or non-success response is reported as
// domain.ErrProviderUnavailable so callers fail closed.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: defaultBaseURL}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) *Client {
	c := NewClient(httpClient)
	c.baseURL = baseURL
	return c
}

type rawQuestion struct {
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []rawQuestion `json:"results"`
}

// Question requests exactly one multiple-choice question, filtered by
// difficulty when given. All entity-encoded text is decoded before return.
func (c *Client) Question(ctx context.Context, difficulty domain.Difficulty) (domain.Question, error) {
	params := url.Values{}
	params.Set("amount", "1")
	params.Set("type", "multiple")
	if difficulty.Valid() {
		params.Set("difficulty", string(difficulty))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Question{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Question{}, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Question{}, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Question{}, fmt.Errorf("%w: decode: %v", domain.ErrProviderUnavailable, err)
	}
	if payload.ResponseCode != 0 {
		return domain.Question{}, fmt.Errorf("%w: response_code=%d", domain.ErrProviderUnavailable, payload.ResponseCode)
	}
	if len(payload.Results) == 0 {
		return domain.Question{}, fmt.Errorf("%w: empty result set", domain.ErrProviderUnavailable)
	}

	return normalize(payload.Results[0])
}

// normalize converts a raw provider record into the typed domain object,
// rejecting records with missing fields.
func normalize(raw rawQuestion) (domain.Question, error) {
	if raw.Question == "" || raw.CorrectAnswer == "" || len(raw.IncorrectAnswers) == 0 {
		return domain.Question{}, fmt.Errorf("%w: incomplete question record", domain.ErrProviderUnavailable)
	}

	incorrect := make([]string, len(raw.IncorrectAnswers))
	for i, answer := range raw.IncorrectAnswers {
		incorrect[i] = html.UnescapeString(answer)
	}

	return domain.Question{
		Text:             html.UnescapeString(raw.Question),
		CorrectAnswer:    html.UnescapeString(raw.CorrectAnswer),
		IncorrectAnswers: incorrect,
		Category:         html.UnescapeString(raw.Category),
		Difficulty:       domain.Difficulty(raw.Difficulty),
	}, nil
}
