package llm

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/stream"
)

// LangChainSource adapts any langchaingo model to the Source interface.
type LangChainSource struct {
	llm   llms.Model
	name  string
	model string
}

// NewLangChainSource wraps a langchaingo model.
func NewLangChainSource(llm llms.Model, name, model string) *LangChainSource {
	return &LangChainSource{
		llm:   llm,
		name:  name,
		model: model,
	}
}

func (l *LangChainSource) Name() string  { return l.name }
func (l *LangChainSource) Model() string { return l.model }

// Stream streams a completion through langchaingo's streaming func.
func (l *LangChainSource) Stream(ctx context.Context, messages []chat.Message, handler stream.Handler) error {
	llmMessages := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		messageType := llms.ChatMessageTypeHuman
		switch msg.Role {
		case chat.RoleSystem:
			messageType = llms.ChatMessageTypeSystem
		case chat.RoleAssistant:
			messageType = llms.ChatMessageTypeAI
		case chat.RoleUser:
			messageType = llms.ChatMessageTypeHuman
		case chat.RoleError:
			continue
		}
		llmMessages = append(llmMessages, llms.TextParts(messageType, msg.Content))
	}

	var accumulated strings.Builder
	streamingFunc := func(ctx context.Context, chunk []byte) error {
		delta := string(chunk)
		accumulated.WriteString(delta)
		return handler.OnChunk(delta, accumulated.String())
	}

	response, err := l.llm.GenerateContent(ctx, llmMessages, llms.WithStreamingFunc(streamingFunc))
	if err != nil {
		handler.OnError(err)
		return err
	}

	finalContent := accumulated.String()

	// If the backend did not stream, deliver the response as one chunk.
	if finalContent == "" && len(response.Choices) > 0 {
		finalContent = response.Choices[0].Content
		if finalContent != "" {
			if err := handler.OnChunk(finalContent, finalContent); err != nil {
				return err
			}
		}
	}

	return handler.OnComplete(finalContent)
}

var _ Source = (*LangChainSource)(nil)
