package chat

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/logger"
	"github.com/iwannatoa/ooc-app/pkg/process"
	"github.com/iwannatoa/ooc-app/pkg/segment"
	"github.com/iwannatoa/ooc-app/pkg/stream"
)

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowResize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case errMsg:
		m.err = msg
		return m, nil

	case chunkMsg:
		return m.handleChunk(StreamChunk(msg))

	default:
		var tiCmd tea.Cmd
		m.textarea, tiCmd = m.textarea.Update(msg)
		cmds = append(cmds, tiCmd)

		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m chatModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.isStreaming {
			m.cancelStream()
		}
		if m.history != nil {
			m.history.Save(m.transcript)
		}
		return m, tea.Quit

	case tea.KeyEsc:
		if m.isStreaming {
			m.cancelStream()
			m.status = "generation cancelled"
			m.updateViewportContent()
		}
		return m, nil

	case tea.KeyEnter:
		if m.isStreaming {
			return m, nil
		}
		input := m.textarea.Value()
		if input == "" {
			return m, nil
		}
		m.textarea.Reset()
		return m.startStream(input)

	case tea.KeyCtrlR:
		m.toggleReasoning()
		m.updateViewportContent()
		return m, nil

	case tea.KeyCtrlD:
		// Delete the most recent assistant message, even mid-stream;
		// the reconciler recovers by rebinding its target.
		if last, ok := m.transcript.FindLastByRole(chat.RoleAssistant); ok {
			m.transcript.Delete(last.ID)
			m.updateViewportContent()
		}
		return m, nil

	case tea.KeyCtrlL:
		if m.isStreaming {
			return m, nil
		}
		m.transcript.Clear()
		if m.history != nil {
			m.history.Save(m.transcript)
		}
		m.status = "conversation cleared"
		m.updateViewportContent()
		return m, nil
	}

	var tiCmd tea.Cmd
	m.textarea, tiCmd = m.textarea.Update(msg)
	return m, tiCmd
}

// startStream appends the user message and launches a provider goroutine
// that feeds chunks back through the model's channel.
func (m chatModel) startStream(input string) (tea.Model, tea.Cmd) {
	m.transcript.Append(chat.NewUserMessage(input))

	// Snapshot before the placeholder goes in so the backend does not see
	// the empty assistant message.
	snapshot := m.transcript.Messages()

	m.reconciler = stream.NewReconciler(m.transcript)
	m.tracker = stream.NewReasoningTracker(nil)
	m.reconciler.Begin()

	ctx, cancel := context.WithCancel(context.Background())
	m.streamID = uuid.NewString()
	m.cancelFunc = cancel
	m.isStreaming = true
	m.procState = process.StateSending
	m.status = ""
	m.updateViewportContent()

	go m.runStream(ctx, m.streamID, snapshot)

	return m, waitForChunk(m.chunkChan)
}

// runStream drives the provider; all transcript writes happen back on the
// UI goroutine via chunk messages. Every chunk is stamped with the session
// id, and sends give up once the session's context is cancelled so an
// abandoned goroutine never parks on the channel forever.
func (m chatModel) runStream(ctx context.Context, sessionID string, messages []chat.Message) {
	log := logger.WithComponent("tui_stream")

	send := func(chunk StreamChunk) error {
		chunk.SessionID = sessionID
		select {
		case m.chunkChan <- chunk:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	handler := stream.HandlerFunc{
		ChunkFunc: func(delta, accumulated string) error {
			return send(StreamChunk{Delta: delta, Accumulated: accumulated})
		},
		CompleteFunc: func(finalContent string) error {
			return send(StreamChunk{IsEnd: true, Final: finalContent})
		},
	}

	if err := m.source.Stream(ctx, messages, handler); err != nil {
		log.Error("stream failed", "session_id", sessionID, "error", err)
		send(StreamChunk{IsEnd: true, Err: err})
	}
}

func (m chatModel) handleChunk(chunk StreamChunk) (tea.Model, tea.Cmd) {
	if chunk.SessionID != m.streamID {
		// Leftover from a cancelled session. Keep draining the channel while
		// a live session still depends on it.
		if m.isStreaming {
			return m, waitForChunk(m.chunkChan)
		}
		return m, nil
	}

	if chunk.IsEnd {
		return m.finishStream(chunk)
	}

	m.reconciler.OnChunk(chunk.Delta, chunk.Accumulated)
	segs := segment.Split(chunk.Accumulated)
	m.tracker.Observe(segs)

	m.procState = process.StateReceiving
	if segment.HasOpen(segs) {
		m.procState = process.StateThinking
	}
	m.updateViewportContent()

	return m, waitForChunk(m.chunkChan)
}

func (m chatModel) finishStream(chunk StreamChunk) (tea.Model, tea.Cmd) {
	m.isStreaming = false
	m.streamID = ""
	m.procState = process.StateIdle
	if m.cancelFunc != nil {
		m.cancelFunc()
		m.cancelFunc = nil
	}

	if chunk.Err != nil {
		m.reconciler.OnError(chunk.Err)
		m.transcript.Append(chat.NewErrorMessage(fmt.Sprintf("Error: %v", chunk.Err)))
	} else {
		m.reconciler.OnComplete(chunk.Final)
		m.tracker.Observe(segment.Split(chunk.Final))
		if m.history != nil {
			m.history.Save(m.transcript)
		}
	}

	m.status = ""
	m.updateViewportContent()
	return m, nil
}

// cancelStream aborts the live session. Clearing streamID marks anything the
// old goroutine already queued as stale; its end event never arrives because
// sends stop once the context is cancelled.
func (m *chatModel) cancelStream() {
	if m.cancelFunc != nil {
		m.cancelFunc()
		m.cancelFunc = nil
	}
	if m.reconciler != nil {
		m.reconciler.Cancel()
	}
	m.isStreaming = false
	m.streamID = ""
	m.procState = process.StateIdle
}

// toggleReasoning flips the newest reasoning span of the live or most
// recently streamed message.
func (m chatModel) toggleReasoning() {
	if m.reconciler == nil || m.tracker == nil {
		return
	}
	target, ok := m.transcript.FindByID(m.reconciler.TargetID())
	if !ok {
		return
	}

	segs := segment.Split(target.Content)
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i].Kind == segment.KindReasoning {
			m.tracker.Toggle(segs[i].Ordinal)
			return
		}
	}
}

// waitForChunk blocks on the stream channel from a command, keeping chunk
// delivery strictly ordered on the UI goroutine.
func waitForChunk(ch <-chan StreamChunk) tea.Cmd {
	return func() tea.Msg {
		return chunkMsg(<-ch)
	}
}
