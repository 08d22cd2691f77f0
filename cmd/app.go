package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/iwannatoa/ooc-app/pkg/config"
	"github.com/iwannatoa/ooc-app/pkg/headless"
)

// runPlain executes one prompt without the TUI and exits.
func runPlain(settings *config.Settings, prompt string, continueHistory bool) {
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "Error: --prompt is required when using --plain")
		os.Exit(1)
	}

	runner, err := headless.NewRunner(settings, continueHistory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing plain mode: %v\n", err)
		os.Exit(1)
	}

	if err := runner.Run(context.Background(), prompt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
