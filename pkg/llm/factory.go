package llm

import (
	"fmt"
	"time"

	lcollama "github.com/tmc/langchaingo/llms/ollama"

	"github.com/iwannatoa/ooc-app/pkg/config"
)

// NewSourceFromConfig builds the streaming source selected by settings.
// When langchain.enabled is set, the Ollama provider is routed through
// langchaingo instead of the native client.
func NewSourceFromConfig(settings *config.Settings) (Source, error) {
	switch settings.Provider {
	case "ollama":
		if settings.LangChain.Enabled {
			llm, err := lcollama.New(
				lcollama.WithServerURL(settings.Ollama.Host),
				lcollama.WithModel(settings.Ollama.DefaultModel),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create langchain ollama client: %w", err)
			}
			return NewLangChainSource(llm, "ollama/langchain", settings.Ollama.DefaultModel), nil
		}
		return NewOllamaSource(
			settings.Ollama.Host,
			settings.Ollama.DefaultModel,
			time.Duration(settings.Ollama.Timeout)*time.Second,
		), nil

	case "deepseek":
		return NewDeepSeekSource(
			settings.DeepSeek.BaseURL,
			settings.DeepSeek.APIKey,
			settings.DeepSeek.Model,
			settings.DeepSeek.MaxTokens,
			settings.DeepSeek.Temperature,
			time.Duration(settings.DeepSeek.Timeout)*time.Second,
		), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", settings.Provider)
	}
}
