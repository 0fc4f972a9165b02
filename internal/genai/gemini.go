package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	genaisdk "google.golang.org/genai"
)

const (
	// DefaultBaseURL is the public Gemini API host.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/"
	// APIVersion is the REST version generateContent is called on.
	APIVersion = "v1beta"
)

var (
	// ErrEmptyResponse is returned when the service answers without any text.
	ErrEmptyResponse = errors.New("no response text from generation service")
	// ErrBlocked is returned when the service refuses the prompt.
	ErrBlocked = errors.New("prompt blocked by generation service")
)

// StatusError is a non-2xx answer from the service.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("generation service returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("generation service returned %d", e.StatusCode)
}

// GeminiClient calls generateContent through the Gemini SDK. It performs
// exactly one exchange per call and never retries.
type GeminiClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient creates a client. A zero timeout leaves the transport
// default in place.
func NewGeminiClient(baseURL string, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &GeminiClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GenerateContent sends req and returns the concatenated text of the first
// candidate. The text is expected to be a JSON document matching req.Schema.
func (c *GeminiClient) GenerateContent(ctx context.Context, apiKey string, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	client, err := genaisdk.NewClient(ctx, &genaisdk.ClientConfig{
		APIKey:     apiKey,
		Backend:    genaisdk.BackendGeminiAPI,
		HTTPClient: c.httpClient,
		HTTPOptions: genaisdk.HTTPOptions{
			BaseURL:    c.baseURL,
			APIVersion: APIVersion,
		},
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, genaisdk.Text(req.Prompt), &genaisdk.GenerateContentConfig{
		ResponseMIMEType: ResponseMIMEType,
		ResponseSchema:   req.Schema,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("generate content: %w", ctxErr)
		}
		return "", apiError(err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", ErrBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			text.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}

// apiError turns the SDK's error envelope into a StatusError. Anything else
// is a transport or decoding failure and is wrapped as is.
func apiError(err error) error {
	var apiErr genaisdk.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{StatusCode: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	return fmt.Errorf("generate content: %w", err)
}
