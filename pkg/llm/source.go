package llm

import (
	"context"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/stream"
)

// Source is a backend that can stream a completion for a conversation.
// Implementations deliver each chunk to the handler together with the full
// accumulated output so far, call OnComplete exactly once on success, and
// propagate transport errors to the caller unchanged after notifying the
// handler via OnError.
type Source interface {
	Stream(ctx context.Context, messages []chat.Message, handler stream.Handler) error

	// Name returns the provider name for logging and display.
	Name() string

	// Model returns the configured model name.
	Model() string
}
