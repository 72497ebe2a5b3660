package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	apperrors "codeforge/internal/errors"
)

const promptTemplate = `You are an expert programmer. Generate CONCISE, CLEAN %s code for the following request.

IMPORTANT RULES:
- Keep the code SHORT and SIMPLE - avoid over-engineering
- Add ONLY essential comments (1-2 lines max) - NO lengthy explanations
- NO repetitive overloads or unnecessary template variations
- Focus on the MOST PRACTICAL and COMMONLY USED implementation
- Return ONLY the code - NO markdown, NO explanations outside the code
- If multiple approaches exist, choose the SIMPLEST one

Request: %s`

// Client wraps the Gemini text-generation API. Each call is one-shot: no
// caching, no streaming, no retries. Backoff on rate limits is left to the
// caller.
type Client struct {
	client  *gemini.Client
	model   string
	timeout time.Duration
}

// NewClient creates a Gemini-backed client for the given model.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not set")
	}
	client, err := gemini.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: model, timeout: timeout}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateCode asks the model for code in the given language and returns the
// cleaned response text. Provider failures are classified into the closed
// error set in internal/errors.
func (c *Client) GenerateCode(ctx context.Context, prompt, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, gemini.Text(buildPrompt(prompt, language)))
	if err != nil {
		return "", classifyError(err)
	}

	return cleanResponse(responseText(resp)), nil
}

func buildPrompt(prompt, language string) string {
	return fmt.Sprintf(promptTemplate, language, prompt)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *gemini.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(gemini.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// cleanResponse strips a single surrounding fenced code block, if present,
// and trims whitespace. Responses holding multiple fences are left alone
// beyond the outer pair.
func cleanResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		} else {
			cleaned = strings.TrimPrefix(cleaned, "```")
		}
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

// classifyError maps a provider failure onto the local error taxonomy by
// upstream status code: 429 rate limited, 404 model unavailable, 401/403
// credential problems, anything else a generic generation failure.
func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			return &apperrors.RateLimitError{RetryAfter: retryDelay(apiErr)}
		case 404:
			return apperrors.ErrProviderUnavailable
		case 401, 403:
			return apperrors.ErrProviderAuthFailed
		}
		return &apperrors.GenerationError{Message: apiErr.Message, Err: err}
	}
	return &apperrors.GenerationError{Message: err.Error(), Err: err}
}

// retryDelay pulls the suggested delay out of a google.rpc.RetryInfo error
// detail, when the provider attached one.
func retryDelay(apiErr *googleapi.Error) string {
	for _, detail := range apiErr.Details {
		entry, ok := detail.(map[string]interface{})
		if !ok {
			continue
		}
		if entry["@type"] != "type.googleapis.com/google.rpc.RetryInfo" {
			continue
		}
		if delay, ok := entry["retryDelay"].(string); ok {
			return delay
		}
	}
	return ""
}
