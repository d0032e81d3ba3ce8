package opentdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mishnah7/quiz-bot/internal/domain"
)

func TestQuestionDecodesAndUnescapes(t *testing.T) {
	var seenQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"response_code": 0,
			"results": [{
				"category": "Science &amp; Nature",
				"difficulty": "easy",
				"question": "What&#039;s H2O?",
				"correct_answer": "Water",
				"incorrect_answers": ["Salt &amp; Pepper", "Oil", "Air"]
			}]
		}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.Client(), server.URL)
	question, err := client.Question(context.Background(), domain.DifficultyEasy)
	if err != nil {
		t.Fatalf("fetch question: %v", err)
	}

	if question.Text != "What's H2O?" {
		t.Fatalf("expected unescaped question, got %q", question.Text)
	}
	if question.Category != "Science & Nature" {
		t.Fatalf("expected unescaped category, got %q", question.Category)
	}
	if question.IncorrectAnswers[0] != "Salt & Pepper" {
		t.Fatalf("expected unescaped incorrect answer, got %q", question.IncorrectAnswers[0])
	}
	if len(question.IncorrectAnswers) != 3 {
		t.Fatalf("expected 3 incorrect answers, got %d", len(question.IncorrectAnswers))
	}

	req, _ := http.NewRequest(http.MethodGet, "http://x/?"+seenQuery, nil)
	q := req.URL.Query()
	if q.Get("amount") != "1" || q.Get("type") != "multiple" || q.Get("difficulty") != "easy" {
		t.Fatalf("unexpected query parameters: %s", seenQuery)
	}
}

func TestQuestionOmitsDifficultyWhenUnspecified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("difficulty") {
			t.Errorf("difficulty must be omitted for the provider default mix")
		}
		w.Write([]byte(`{"response_code":0,"results":[{"category":"c","difficulty":"medium","question":"q","correct_answer":"a","incorrect_answers":["b"]}]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.Client(), server.URL)
	if _, err := client.Question(context.Background(), domain.DifficultyUnspecified); err != nil {
		t.Fatalf("fetch question: %v", err)
	}
}

func TestQuestionFailsClosed(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"non-200 status", http.StatusBadGateway, ""},
		{"malformed json", http.StatusOK, "not-json"},
		{"non-zero response code", http.StatusOK, `{"response_code":1,"results":[]}`},
		{"empty results", http.StatusOK, `{"response_code":0,"results":[]}`},
		{"missing correct answer", http.StatusOK, `{"response_code":0,"results":[{"question":"q","incorrect_answers":["b"]}]}`},
		{"missing incorrect answers", http.StatusOK, `{"response_code":0,"results":[{"question":"q","correct_answer":"a","incorrect_answers":[]}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClientWithBaseURL(server.Client(), server.URL)
			_, err := client.Question(context.Background(), domain.DifficultyUnspecified)
			if !errors.Is(err, domain.ErrProviderUnavailable) {
				t.Fatalf("expected ErrProviderUnavailable, got %v", err)
			}
		})
	}
}
