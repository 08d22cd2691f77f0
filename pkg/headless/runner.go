package headless

import (
	"context"
	"fmt"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/config"
	"github.com/iwannatoa/ooc-app/pkg/llm"
	"github.com/iwannatoa/ooc-app/pkg/logger"
	"github.com/iwannatoa/ooc-app/pkg/prompt"
	"github.com/iwannatoa/ooc-app/pkg/stream"
	"github.com/iwannatoa/ooc-app/pkg/tokens"
)

// Runner executes a single prompt without the TUI and prints the streamed
// response to stdout.
type Runner struct {
	source     llm.Source
	transcript *chat.Transcript
	history    *chat.History
	settings   *config.Settings
}

// NewRunner builds a runner from the current settings.
func NewRunner(settings *config.Settings, continueHistory bool) (*Runner, error) {
	source, err := llm.NewSourceFromConfig(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	systemPrompt, err := prompt.Build(settings, source.Name(), source.Model())
	if err != nil {
		return nil, err
	}

	transcript := chat.NewTranscript()

	var history *chat.History
	if settings.History.Enabled {
		history, err = chat.NewHistory(settings.History.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		if continueHistory {
			if err := history.Load(transcript); err != nil {
				return nil, fmt.Errorf("failed to load history: %w", err)
			}
		} else {
			if err := history.Clear(); err != nil {
				return nil, fmt.Errorf("failed to clear history: %w", err)
			}
		}
	}
	transcript.EnsureLeadingSystem(systemPrompt)

	return &Runner{
		source:     source,
		transcript: transcript,
		history:    history,
		settings:   settings,
	}, nil
}

// Run streams one prompt through the provider, reconciling the response
// into the transcript while printing it.
func (r *Runner) Run(ctx context.Context, prompt string) error {
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty in headless mode")
	}

	log := logger.WithComponent("headless")
	log.Info("executing prompt", "provider", r.source.Name(), "model", r.source.Model())

	counter, err := tokens.NewCounter(r.source.Model())
	if err != nil {
		log.Warn("token counting unavailable", "error", err)
	}

	r.transcript.Append(chat.NewUserMessage(prompt))
	messages := r.transcript.Messages()

	reconciler := stream.NewReconciler(r.transcript)
	reconciler.Begin()

	printer := newStreamPrinter(r.settings.ShowThinking)
	handler := stream.Tee(printer, reconciler)

	if err := r.source.Stream(ctx, messages, handler); err != nil {
		reconciler.Cancel()
		return fmt.Errorf("stream failed: %w", err)
	}

	if counter != nil {
		sent := counter.CountMessages(messages)
		recv := 0
		if response, ok := r.transcript.FindLastByRole(chat.RoleAssistant); ok {
			recv = counter.Count(response.Content)
		}
		log.Info("prompt complete", "tokens_sent", sent, "tokens_received", recv)
	}

	if r.history != nil {
		if err := r.history.Save(r.transcript); err != nil {
			log.Warn("failed to save history", "error", err)
		}
	}

	return nil
}
