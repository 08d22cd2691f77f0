package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/config"
	"github.com/iwannatoa/ooc-app/pkg/llm"
	"github.com/iwannatoa/ooc-app/pkg/logger"
	"github.com/iwannatoa/ooc-app/pkg/prompt"
	tuichat "github.com/iwannatoa/ooc-app/pkg/tui/chat"
)

// StartApp wires the transcript, history, and provider together and runs
// the interactive chat program.
func StartApp(settings *config.Settings, continueSession bool) error {
	log := logger.WithComponent("app")

	source, err := llm.NewSourceFromConfig(settings)
	if err != nil {
		return err
	}
	log.Info("provider ready", "provider", source.Name(), "model", source.Model())

	if checker, ok := source.(llm.HealthChecker); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		status, err := checker.CheckHealth(ctx)
		cancel()
		if err == nil && !status.Available {
			fmt.Printf("Warning: %v\n", status.Error)
			log.Warn("provider unreachable", "error", status.Error)
		}
	}

	systemPrompt, err := prompt.Build(settings, source.Name(), source.Model())
	if err != nil {
		return err
	}

	transcript := chat.NewTranscript()

	var history *chat.History
	if settings.History.Enabled {
		history, err = chat.NewHistory(settings.History.File)
		if err != nil {
			return err
		}
		if continueSession {
			if err := history.Load(transcript); err != nil {
				log.Warn("could not load previous session", "error", err)
			}
		}
	}
	transcript.EnsureLeadingSystem(systemPrompt)

	model := tuichat.NewChatModel(transcript, history, source)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
