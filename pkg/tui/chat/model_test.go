package chat

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/testutil"
)

// driveStream runs the command loop until the stream settles, the way the
// bubbletea runtime would.
func driveStream(t *testing.T, m chatModel, cmd tea.Cmd) chatModel {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		var model tea.Model
		model, cmd = m.Update(msg)
		m = model.(chatModel)
	}
	return m
}

func pressEnter(m chatModel, input string) (chatModel, tea.Cmd) {
	m.textarea.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model.(chatModel), cmd
}

func TestChatModelStreaming(t *testing.T) {
	t.Run("should reconcile a streamed response into the transcript", func(t *testing.T) {
		transcript := chat.NewTranscript()
		source := testutil.NewFakeSource("Once upon a time.")
		m := NewChatModel(transcript, nil, source)

		m, cmd := pressEnter(m, "tell me a story")
		require.NotNil(t, cmd)
		m = driveStream(t, m, cmd)

		assert.False(t, m.isStreaming)
		assert.Equal(t, 2, transcript.Len())

		final, ok := transcript.FindLastByRole(chat.RoleAssistant)
		require.True(t, ok)
		assert.Equal(t, "Once upon a time.", final.Content)
	})

	t.Run("should not send the placeholder to the provider", func(t *testing.T) {
		transcript := chat.NewTranscript()
		source := testutil.NewFakeSource("ok")
		m := NewChatModel(transcript, nil, source)

		m, cmd := pressEnter(m, "hello")
		driveStream(t, m, cmd)

		require.Len(t, source.Calls, 1)
		for _, msg := range source.Calls[0] {
			assert.NotEmpty(t, msg.Content)
		}
	})

	t.Run("should collapse a completed reasoning span", func(t *testing.T) {
		transcript := chat.NewTranscript()
		source := testutil.NewFakeSource("<think>plotting</think>Chapter one.")
		m := NewChatModel(transcript, nil, source)

		m, cmd := pressEnter(m, "continue the story")
		m = driveStream(t, m, cmd)

		require.NotNil(t, m.tracker)
		assert.True(t, m.tracker.Collapsed(0))
	})

	t.Run("should append an error message when the stream fails", func(t *testing.T) {
		transcript := chat.NewTranscript()
		source := testutil.NewFakeSource("partial response that fails")
		source.FailAfter = 2
		source.Err = errors.New("connection reset")
		m := NewChatModel(transcript, nil, source)

		m, cmd := pressEnter(m, "hello")
		m = driveStream(t, m, cmd)

		assert.False(t, m.isStreaming)
		last, ok := transcript.FindLastByRole(chat.RoleError)
		require.True(t, ok)
		assert.Contains(t, last.Content, "connection reset")
	})

	t.Run("should drop leftover chunks from a cancelled stream", func(t *testing.T) {
		transcript := chat.NewTranscript()
		source := testutil.NewFakeSource("Draft one of the tale.")
		m := NewChatModel(transcript, nil, source)

		m, cmd := pressEnter(m, "tell me a story")
		require.NotNil(t, cmd)

		// Apply the first chunk, then cancel mid-flight. Whatever the old
		// goroutine already queued stays in the channel.
		model, next := m.Update(cmd())
		m = model.(chatModel)
		require.NotNil(t, next)

		model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(chatModel)
		require.False(t, m.isStreaming)

		// The next request must not inherit the cancelled session's output
		// or be terminated by its end event.
		source.Response = "A calmer second tale."
		m, cmd = pressEnter(m, "try again")
		m = driveStream(t, m, cmd)

		assert.False(t, m.isStreaming)
		final, ok := transcript.FindLastByRole(chat.RoleAssistant)
		require.True(t, ok)
		assert.Equal(t, "A calmer second tale.", final.Content)
	})

	t.Run("should ignore enter while a stream is active", func(t *testing.T) {
		transcript := chat.NewTranscript()
		source := testutil.NewFakeSource("ok")
		m := NewChatModel(transcript, nil, source)
		m.isStreaming = true

		m.textarea.SetValue("second message")
		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = model.(chatModel)

		assert.Nil(t, cmd)
		assert.Equal(t, 0, transcript.Len())
	})
}

func TestChatModelRendering(t *testing.T) {
	t.Run("should render collapsed reasoning as a summary", func(t *testing.T) {
		transcript := chat.NewTranscript()
		source := testutil.NewFakeSource("<think>secret plan</think>Visible prose.")
		m := NewChatModel(transcript, nil, source)
		m.handleWindowResize(80, 24)

		m, cmd := pressEnter(m, "go")
		m = driveStream(t, m, cmd)
		m.updateViewportContent()

		view := m.viewport.View()
		assert.Contains(t, view, "Visible prose.")
		assert.NotContains(t, view, "secret plan")
		assert.Contains(t, view, "thinking")
	})

	t.Run("should label only the first narrative part of a reply", func(t *testing.T) {
		transcript := chat.NewTranscript()
		source := testutil.NewFakeSource("<think>a</think>Part one.<think>b</think>Part two.")
		m := NewChatModel(transcript, nil, source)
		m.handleWindowResize(80, 24)

		m, cmd := pressEnter(m, "go")
		m = driveStream(t, m, cmd)
		m.updateViewportContent()

		view := m.viewport.View()
		assert.Equal(t, 1, strings.Count(view, "Assistant: "))
		assert.Contains(t, view, "Part one.")
		assert.Contains(t, view, "Part two.")
	})

	t.Run("should show expanded reasoning after a toggle", func(t *testing.T) {
		transcript := chat.NewTranscript()
		source := testutil.NewFakeSource("<think>secret plan</think>Visible prose.")
		m := NewChatModel(transcript, nil, source)
		m.handleWindowResize(80, 24)

		m, cmd := pressEnter(m, "go")
		m = driveStream(t, m, cmd)

		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
		m = model.(chatModel)

		assert.False(t, m.tracker.Collapsed(0))
		assert.Contains(t, m.viewport.View(), "secret plan")
	})
}

func TestStreamChunkOrdering(t *testing.T) {
	t.Run("should deliver chunks in order through the channel", func(t *testing.T) {
		transcript := chat.NewTranscript()
		source := testutil.NewFakeSource(strings.Repeat("abcde", 20))
		source.ChunkSize = 7
		m := NewChatModel(transcript, nil, source)

		m, cmd := pressEnter(m, "go")
		m = driveStream(t, m, cmd)

		final, ok := transcript.FindLastByRole(chat.RoleAssistant)
		require.True(t, ok)
		assert.Equal(t, strings.Repeat("abcde", 20), final.Content)
	})
}
