package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient lets tests substitute a scripted transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	defaultChatModel    = "gpt-5"
	defaultChatTimeout  = 30 * time.Second
	maxCompletionTokens = 2048
)

// ChatClient implements Completer against an OpenAI-compatible
// chat-completions endpoint. Every call is bounded by the client timeout so
// callers never block indefinitely on the network.
type ChatClient struct {
	apiKey  string
	baseURL string
	model   string
	client  HTTPClient
	timeout time.Duration
}

func NewChatClient(apiKey, baseURL, model string, client HTTPClient) *ChatClient {
	if client == nil {
		client = http.DefaultClient
	}
	if model == "" {
		model = defaultChatModel
	}
	return &ChatClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  client,
		timeout: defaultChatTimeout,
	}
}

// CompleteJSON sends one chat-completion request in JSON mode and returns
// the message content, which the model is instructed to keep a single JSON
// object. All failures map to bad_gateway errors.
func (c *ChatClient) CompleteJSON(ctx context.Context, system, user string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"response_format":       map[string]string{"type": "json_object"},
		"max_completion_tokens": maxCompletionTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, normalizeChatEndpoint(c.baseURL), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewBadGatewayError(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, NewBadGatewayError(string(b))
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cc); err != nil {
		return nil, NewBadGatewayError(err.Error())
	}
	if len(cc.Choices) == 0 {
		return nil, NewBadGatewayError("no choices in completion")
	}
	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	if content == "" {
		return nil, NewBadGatewayError("empty completion content")
	}
	if !json.Valid([]byte(content)) {
		return nil, NewBadGatewayError("completion content is not valid JSON")
	}
	return []byte(content), nil
}

func normalizeChatEndpoint(base string) string {
	endpoint := strings.TrimRight(strings.TrimSpace(base), "/")
	if endpoint == "" {
		endpoint = "https://api.openai.com"
	}
	switch {
	case strings.HasSuffix(endpoint, "/chat/completions"):
		return endpoint
	case strings.HasSuffix(endpoint, "/v1"):
		return endpoint + "/chat/completions"
	default:
		return endpoint + "/v1/chat/completions"
	}
}
