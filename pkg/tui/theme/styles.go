package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Warm base16 palette for long-form prose on a dark background
var (
	// Base colors (backgrounds and text)
	ColorBase00 = lipgloss.Color("#1a1816") // Dark background
	ColorBase01 = lipgloss.Color("#282420") // Lighter background
	ColorBase02 = lipgloss.Color("#36302a") // Selection background
	ColorBase03 = lipgloss.Color("#5c5044") // Comments, invisibles
	ColorBase04 = lipgloss.Color("#83715f") // Dark foreground
	ColorBase05 = lipgloss.Color("#ab937b") // Default foreground
	ColorBase06 = lipgloss.Color("#d3b597") // Light foreground

	// Accent colors
	ColorRed    = lipgloss.Color("#d95f5f") // Errors
	ColorOrange = lipgloss.Color("#eb8755") // Focus, prompts
	ColorYellow = lipgloss.Color("#f5b761") // Warnings
	ColorGreen  = lipgloss.Color("#93b56b") // Success
	ColorCyan   = lipgloss.Color("#61afaf") // Info
	ColorBlue   = lipgloss.Color("#6b93b5") // User text
)

// Styles defines the Lipgloss styles for the chat components
type Styles struct {
	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	SystemMessage    lipgloss.Style
	ErrorMessage     lipgloss.Style
	DefaultMessage   lipgloss.Style

	ReasoningText  lipgloss.Style
	ReasoningLabel lipgloss.Style

	StatusLine lipgloss.Style
	Cursor     lipgloss.Style
}

// DefaultStyles returns the default style set
func DefaultStyles() *Styles {
	return &Styles{
		UserMessage:      lipgloss.NewStyle().Foreground(ColorBlue),
		AssistantMessage: lipgloss.NewStyle().Foreground(ColorBase06),
		SystemMessage:    lipgloss.NewStyle().Foreground(ColorBase04).Italic(true),
		ErrorMessage:     lipgloss.NewStyle().Foreground(ColorRed),
		DefaultMessage:   lipgloss.NewStyle().Foreground(ColorBase05),

		ReasoningText:  lipgloss.NewStyle().Foreground(ColorBase03).Italic(true),
		ReasoningLabel: lipgloss.NewStyle().Foreground(ColorBase04).Bold(true),

		StatusLine: lipgloss.NewStyle().Foreground(ColorBase04),
		Cursor:     lipgloss.NewStyle().Foreground(ColorOrange),
	}
}
