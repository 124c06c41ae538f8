package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"legaldocs-backend/internal/llm"
	"legaldocs-backend/internal/shared/telemetry"
)

const (
	defaultAPIURL = "https://api.openai.com/v1/chat/completions"
	defaultModel  = "gpt-4o-mini"
)

// Client implements llm.Enricher using OpenAI Chat Completions with a
// structured-output constraint. A client without an API key is valid:
// it reports the capability as unavailable instead of erroring, so a
// missing credential never fails a create operation.
type Client struct {
	apiKey     string
	model      string
	maxInput   int
	baseURL    string
	httpClient *http.Client

	skipLogOnce sync.Once
}

// NewClient constructs the enrichment client. An empty model falls back
// to the default model name; an empty apiKey disables the client.
func NewClient(apiKey, model string, maxInput int) *Client {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:   strings.TrimSpace(apiKey),
		model:    model,
		maxInput: maxInput,
		baseURL:  defaultAPIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Enrich sends extracted text to the service and maps the validated
// response. Every failure mode degrades to (nil, false).
func (c *Client) Enrich(ctx context.Context, text string) (*llm.Enrichment, bool) {
	if c.apiKey == "" {
		c.skipLogOnce.Do(func() {
			telemetry.Warn("enrichment.skipped", map[string]any{
				"reason": "OPENAI_API_KEY not configured",
			})
		})
		return nil, false
	}
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	start := time.Now()
	raw, usage, err := c.complete(ctx, llm.BuildPrompt(text, c.maxInput))
	if err != nil {
		telemetry.Warn("enrichment.failed", map[string]any{
			"model":       c.model,
			"err":         err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, false
	}

	if err := llm.ValidateResult(raw); err != nil {
		telemetry.Warn("enrichment.schema_mismatch", map[string]any{
			"model": c.model,
			"err":   err.Error(),
		})
		return nil, false
	}

	enr, err := llm.ParseResult(raw)
	if err != nil {
		telemetry.Warn("enrichment.unusable", map[string]any{
			"model": c.model,
			"err":   err.Error(),
		})
		return nil, false
	}

	fields := map[string]any{
		"model":       c.model,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if usage != nil {
		fields["prompt_tokens"] = usage.PromptTokens
		fields["completion_tokens"] = usage.CompletionTokens
		fields["total_tokens"] = usage.TotalTokens
	}
	telemetry.Info("enrichment.complete", fields)

	return enr, true
}

type tokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

func (c *Client) complete(ctx context.Context, messages []llm.Message) (json.RawMessage, *tokenUsage, error) {
	temp := float32(0)
	reqMessages := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, chatMessage{Role: m.Role, Content: m.Content})
	}
	reqBody := chatRequest{
		Model:    c.model,
		Messages: reqMessages,
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "legal_document_metadata",
				Strict: true,
				Schema: llm.ResultSchema(),
			},
		},
	}
	reqBody.Temperature = &temp
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, errParse{cause: err}
	}
	if parsed.Error != nil {
		return nil, nil, errAPI{message: parsed.Error.Message, kind: parsed.Error.Type}
	}
	if len(parsed.Choices) == 0 {
		return nil, nil, errAPI{message: "response missing choices"}
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, nil, errAPI{message: "response empty content"}
	}
	return json.RawMessage(content), toUsage(parsed.Usage), nil
}

func toUsage(raw *struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens     int `json:"total_tokens"`
}) *tokenUsage {
	if raw == nil {
		return nil
	}
	return &tokenUsage{
		PromptTokens:     raw.PromptTokens,
		CompletionTokens: raw.CompletionTokens,
		TotalTokens:      raw.TotalTokens,
	}
}

type errParse struct{ cause error }

func (e errParse) Error() string { return "openai response parse: " + e.cause.Error() }
func (e errParse) Unwrap() error { return e.cause }

type errAPI struct {
	message string
	kind    string
}

func (e errAPI) Error() string {
	if e.kind == "" {
		return "openai: " + e.message
	}
	return "openai: " + e.message + " (" + e.kind + ")"
}

var _ llm.Enricher = (*Client)(nil)
