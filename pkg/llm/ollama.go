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

// OllamaSource streams chat completions from an Ollama server using the
// native NDJSON /api/chat endpoint.
type OllamaSource struct {
	baseURL    string
	model      string
	httpClient *http.Client
	log        *logger.ComponentLogger
}

// NewOllamaSource creates a streaming source for the given Ollama host.
func NewOllamaSource(baseURL, model string, timeout time.Duration) *OllamaSource {
	return &OllamaSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logger.WithComponent("ollama"),
	}
}

func (o *OllamaSource) Name() string  { return "ollama" }
func (o *OllamaSource) Model() string { return o.model }

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatChunk struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error,omitempty"`
}

// Stream sends the conversation and feeds NDJSON chunks through the handler.
func (o *OllamaSource) Stream(ctx context.Context, messages []chat.Message, handler stream.Handler) error {
	req := ollamaChatRequest{
		Model:  o.model,
		Stream: true,
	}
	for _, msg := range messages {
		if msg.IsError() {
			continue
		}
		req.Messages = append(req.Messages, ollamaMessage{Role: msg.Role, Content: msg.Content})
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat", o.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
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

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk ollamaChatChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			o.log.Warn("skipping malformed chunk", "error", err)
			continue
		}

		if chunk.Error != "" {
			err := fmt.Errorf("ollama error: %s", chunk.Error)
			handler.OnError(err)
			return err
		}

		if chunk.Message.Content != "" {
			accumulated.WriteString(chunk.Message.Content)
			if err := handler.OnChunk(chunk.Message.Content, accumulated.String()); err != nil {
				return err
			}
		}

		if chunk.Done {
			return handler.OnComplete(accumulated.String())
		}
	}

	if err := scanner.Err(); err != nil {
		handler.OnError(err)
		return err
	}

	// Stream ended without a done marker; treat what arrived as final.
	return handler.OnComplete(accumulated.String())
}

var _ Source = (*OllamaSource)(nil)
