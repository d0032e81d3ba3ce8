package translate

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/Mishnah7/quiz-bot/internal/domain"
)

const defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator localizes text from English to a target language via the
// public translate endpoint. Translation is strictly best-effort: any failure
// returns the input unchanged and is never surfaced to the user.
type GoogleTranslator struct {
	httpClient *http.Client
	endpoint   string
}

func NewGoogleTranslator(httpClient *http.Client) *GoogleTranslator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GoogleTranslator{httpClient: httpClient, endpoint: defaultEndpoint}
}

// NewGoogleTranslatorWithEndpoint is used by tests to point at a stub server.
func NewGoogleTranslatorWithEndpoint(httpClient *http.Client, endpoint string) *GoogleTranslator {
	t := NewGoogleTranslator(httpClient)
	t.endpoint = endpoint
	return t
}

func (t *GoogleTranslator) Translate(ctx context.Context, text, lang string) string {
	if lang == domain.DefaultLanguage || text == "" {
		return text
	}
	if _, ok := domain.Languages[lang]; !ok {
		return text
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", domain.DefaultLanguage)
	params.Set("tl", lang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return text
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		log.Printf("translate: request failed: %v", err)
		return text
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("translate: status %d", resp.StatusCode)
		return text
	}

	translated, err := decodeSegments(resp.Body)
	if err != nil || translated == "" {
		return text
	}
	return translated
}

// decodeSegments extracts translated text from the endpoint's nested-array
// payload: [[["<translated>","<source>",...],...],...].
func decodeSegments(body io.Reader) (string, error) {
	var outer []json.RawMessage
	if err := json.NewDecoder(body).Decode(&outer); err != nil {
		return "", err
	}
	if len(outer) == 0 {
		return "", nil
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(outer[0], &segments); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(segment[0], &part); err != nil {
			return "", err
		}
		b.WriteString(part)
	}
	return b.String(), nil
}
