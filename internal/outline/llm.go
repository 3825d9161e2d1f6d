package outline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

// LLMProvider defines the interface the page verifier needs from a language
// model backend.
type LLMProvider interface {
	// Complete sends a prompt and returns the response text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Model returns the model identifier being used.
	Model() string
}

// RetryableError marks an LLM backend failure worth retrying (rate limits,
// server errors). Other failures are surfaced immediately.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable API error (status %d): %s", e.StatusCode, e.Message)
}

// OpenAIProvider implements LLMProvider against OpenAI's chat completions API.
type OpenAIProvider struct {
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAIProvider creates a provider reading its key from OPENAI_API_KEY.
func NewOpenAIProvider(model string) (*OpenAIProvider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	return &OpenAIProvider{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		maxRetries: 3,
	}, nil
}

// Model returns the model identifier.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Complete sends a single-turn prompt and returns the response text.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	req := openAIRequest{
		Model:       p.model,
		Messages:    []openAIMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		text, err := p.doRequest(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err

		var retryable *RetryableError
		if !errors.As(err, &retryable) {
			return "", err
		}
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (p *OpenAIProvider) doRequest(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.openai.com/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var oaiResp openAIResponse
	if err := json.Unmarshal(respBody, &oaiResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if oaiResp.Error != nil {
		return "", fmt.Errorf("API error: %s", oaiResp.Error.Message)
	}
	if len(oaiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return oaiResp.Choices[0].Message.Content, nil
}

// OllamaProvider implements LLMProvider against a local Ollama server.
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllamaProvider creates a provider pointed at the host from the OLLAMA_HOST
// environment (or the Ollama default).
func NewOllamaProvider(model string) (*OllamaProvider, error) {
	client := api.NewClient(envconfig.Host(), http.DefaultClient)
	return &OllamaProvider{client: client, model: model}, nil
}

// Model returns the model identifier.
func (p *OllamaProvider) Model() string {
	return p.model
}

// Complete sends a prompt and collects the streamed response.
func (p *OllamaProvider) Complete(ctx context.Context, prompt string) (string, error) {
	req := api.GenerateRequest{
		Model:  p.model,
		Prompt: prompt,
		Options: map[string]interface{}{
			"temperature": 0.0,
		},
	}

	var responseBuilder strings.Builder
	err := p.client.Generate(ctx, &req, func(resp api.GenerateResponse) error {
		_, err := responseBuilder.WriteString(resp.Response)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("generate response: %w", err)
	}

	return responseBuilder.String(), nil
}

// ExtractJSON extracts and parses JSON from an LLM response, handling
// responses wrapped in ```json ... ``` blocks and common formatting slips.
func ExtractJSON[T any](content string) (T, error) {
	var result T

	content = strings.TrimSpace(content)
	if startIdx := strings.Index(content, "```json"); startIdx != -1 {
		startIdx += 7
		if endIdx := strings.LastIndex(content, "```"); endIdx > startIdx {
			content = content[startIdx:endIdx]
		}
	} else if startIdx := strings.Index(content, "```"); startIdx != -1 {
		startIdx += 3
		if endIdx := strings.LastIndex(content[startIdx:], "```"); endIdx != -1 {
			content = content[startIdx : startIdx+endIdx]
		}
	}

	content = strings.TrimSpace(content)
	content = replaceBareNone(content)

	if err := json.Unmarshal([]byte(content), &result); err != nil {
		// Try fixing trailing commas
		content = strings.ReplaceAll(content, ",]", "]")
		content = strings.ReplaceAll(content, ",}", "}")
		if err := json.Unmarshal([]byte(content), &result); err != nil {
			return result, fmt.Errorf("parse JSON: %w (content: %s)", err, truncate(content, 200))
		}
	}

	return result, nil
}

// replaceBareNone rewrites Python-style None tokens as null. Only bare tokens
// outside string values are touched, so a title like "None of the Above"
// survives intact.
func replaceBareNone(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	inString := false
	for i := 0; i < len(content); i++ {
		c := content[i]
		if inString {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(content) {
					i++
					b.WriteByte(content[i])
				}
			case '"':
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == 'N' && strings.HasPrefix(content[i:], "None") &&
			(i == 0 || !isWordByte(content[i-1])) &&
			(i+4 == len(content) || !isWordByte(content[i+4])):
			b.WriteString("null")
			i += 3
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
