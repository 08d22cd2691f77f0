package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/llm"
	"github.com/iwannatoa/ooc-app/pkg/process"
	"github.com/iwannatoa/ooc-app/pkg/stream"
	"github.com/iwannatoa/ooc-app/pkg/tokens"
	"github.com/iwannatoa/ooc-app/pkg/tui/theme"
)

type chatModel struct {
	viewport viewport.Model
	textarea textarea.Model
	styles   *theme.Styles

	transcript *chat.Transcript
	history    *chat.History
	source     llm.Source

	// Active stream session state. streamID identifies the session whose
	// chunks are currently accepted; everything else on the channel is stale.
	reconciler  *stream.Reconciler
	tracker     *stream.ReasoningTracker
	chunkChan   chan StreamChunk
	streamID    string
	cancelFunc  context.CancelFunc
	isStreaming bool
	procState   process.State

	// counter is nil when the encoding could not be loaded
	counter *tokens.Counter

	status string
	err    error
	width  int
	height int
}

// NewChatModel builds the chat view. history may be nil when persistence is
// disabled.
func NewChatModel(transcript *chat.Transcript, history *chat.History, source llm.Source) chatModel {
	ta := textarea.New()
	ta.Focus()
	ta.Placeholder = "Describe what happens next..."
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	vp := viewport.New(80, 20)

	counter, _ := tokens.NewCounter(source.Model())

	return chatModel{
		textarea:   ta,
		viewport:   vp,
		styles:     theme.DefaultStyles(),
		transcript: transcript,
		history:    history,
		source:     source,
		chunkChan:  make(chan StreamChunk, 64),
		counter:    counter,
	}
}
