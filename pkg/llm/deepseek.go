package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/logger"
	"github.com/iwannatoa/ooc-app/pkg/stream"
)

// DeepSeekSource streams chat completions from the DeepSeek API, which
// speaks the OpenAI-style SSE chat completions protocol.
type DeepSeekSource struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	log         *logger.ComponentLogger
}

// NewDeepSeekSource creates a streaming source for the DeepSeek API.
func NewDeepSeekSource(baseURL, apiKey, model string, maxTokens int, temperature float64, timeout time.Duration) *DeepSeekSource {
	return &DeepSeekSource{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logger.WithComponent("deepseek"),
	}
}

func (d *DeepSeekSource) Name() string  { return "deepseek" }
func (d *DeepSeekSource) Model() string { return d.model }

type deepseekChatRequest struct {
	Model       string            `json:"model"`
	Messages    []deepseekMessage `json:"messages"`
	MaxTokens   int               `json:"max_tokens,omitempty"`
	Temperature float64           `json:"temperature,omitempty"`
	Stream      bool              `json:"stream"`
}

type deepseekMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type deepseekChatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Stream sends the conversation and feeds SSE deltas through the handler.
func (d *DeepSeekSource) Stream(ctx context.Context, messages []chat.Message, handler stream.Handler) error {
	if d.apiKey == "" {
		err := fmt.Errorf("deepseek api key is not configured")
		handler.OnError(err)
		return err
	}

	req := deepseekChatRequest{
		Model:       d.model,
		MaxTokens:   d.maxTokens,
		Temperature: d.temperature,
		Stream:      true,
	}
	for _, msg := range messages {
		if msg.IsError() {
			continue
		}
		req.Messages = append(req.Messages, deepseekMessage{Role: msg.Role, Content: msg.Content})
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", d.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		handler.OnError(err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			err = fmt.Errorf("request failed with status %d", resp.StatusCode)
		} else {
			err = fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(errorBody)))
		}
		handler.OnError(err)
		return err
	}

	var accumulated strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			handler.OnError(ctx.Err())
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			return handler.OnComplete(accumulated.String())
		}

		var chunk deepseekChatChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			d.log.Warn("skipping malformed event", "error", err)
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta.Content
		if delta != "" {
			accumulated.WriteString(delta)
			if err := handler.OnChunk(delta, accumulated.String()); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		handler.OnError(err)
		return err
	}

	return handler.OnComplete(accumulated.String())
}

var _ Source = (*DeepSeekSource)(nil)
