package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/iwannatoa/ooc-app/pkg/chat"
)

// Counter estimates token usage for prompts and responses. Local models do
// not share a tokenizer, so cl100k_base is used as a workable approximation.
type Counter struct {
	encoder *tiktoken.Tiktoken
	mu      sync.RWMutex
}

// NewCounter creates a counter using the encoding that best matches the
// given model name.
func NewCounter(modelName string) (*Counter, error) {
	encoder, err := tiktoken.GetEncoding(encodingForModel(modelName))
	if err != nil {
		encoder, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}

	return &Counter{encoder: encoder}, nil
}

// Count returns the number of tokens in the given text.
func (c *Counter) Count(text string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.encoder == nil {
		return estimateTokens(text)
	}
	return len(c.encoder.Encode(text, nil, nil))
}

// CountMessages returns the approximate token count of a conversation,
// including per-message boundary overhead.
func (c *Counter) CountMessages(messages []chat.Message) int {
	total := 0
	for _, msg := range messages {
		total += c.Count(msg.Role)
		total += c.Count(msg.Content)
		total += 4 // message boundary markers
	}
	if total > 0 {
		total += 3 // reply is primed with the assistant role
	}
	return total
}

func encodingForModel(modelName string) string {
	modelLower := strings.ToLower(modelName)

	if strings.Contains(modelLower, "davinci") || strings.Contains(modelLower, "curie") {
		return "p50k_base"
	}
	if strings.Contains(modelLower, "code") {
		return "p50k_base"
	}

	// Works reasonably well for most modern models, local ones included.
	return "cl100k_base"
}

// estimateTokens is a rough fallback when no encoder is available.
func estimateTokens(text string) int {
	wordEstimate := len(strings.Fields(text))
	charEstimate := len(text) / 4

	if wordEstimate > charEstimate {
		return wordEstimate
	}
	return charEstimate
}
