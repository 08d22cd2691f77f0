package prompt

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tmc/langchaingo/prompts"

	"github.com/iwannatoa/ooc-app/pkg/config"
)

// Vars are the values a system prompt template may reference as {provider},
// {model}, and {date}.
type Vars struct {
	Provider string
	Model    string
	Date     string
}

// Render interpolates template variables into the prompt text.
func Render(text string, vars Vars) (string, error) {
	if text == "" {
		return "", nil
	}

	date := vars.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	tpl := prompts.NewPromptTemplate(text, []string{"provider", "model", "date"})
	rendered, err := tpl.Format(map[string]any{
		"provider": vars.Provider,
		"model":    vars.Model,
		"date":     date,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render system prompt: %w", err)
	}
	return strings.TrimSpace(rendered), nil
}

// Build resolves the system prompt for a session. A configured prompt file
// takes precedence over the inline setting.
func Build(settings *config.Settings, provider, model string) (string, error) {
	text := settings.SystemPrompt
	if settings.SystemPromptFile != "" {
		data, err := os.ReadFile(settings.SystemPromptFile)
		if err != nil {
			return "", fmt.Errorf("failed to read system prompt file: %w", err)
		}
		text = string(data)
	}

	return Render(text, Vars{Provider: provider, Model: model})
}
