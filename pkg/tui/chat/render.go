package chat

import (
	"fmt"
	"strings"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/segment"
)

const streamingCursor = "▌"

func (m *chatModel) handleWindowResize(width, height int) {
	m.width = width
	m.height = height

	inputHeight := m.textarea.Height() + 1
	statusHeight := 1

	m.viewport.Width = width
	m.viewport.Height = height - inputHeight - statusHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.textarea.SetWidth(width)

	m.updateViewportContent()
}

// updateViewportContent re-renders the transcript and keeps the view pinned
// to the bottom so streaming output stays visible.
func (m *chatModel) updateViewportContent() {
	var b strings.Builder

	// The tracked message keeps its per-span collapse state after the stream
	// settles; the cursor only shows while it is still live.
	trackedID := ""
	if m.reconciler != nil {
		trackedID = m.reconciler.TargetID()
	}

	for _, msg := range m.transcript.Messages() {
		tracked := msg.ID == trackedID
		b.WriteString(m.renderMessage(msg, tracked, tracked && m.isStreaming))
		b.WriteString("\n\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// renderStatusLine shows what the client is doing plus an approximate token
// count for the conversation.
func (m *chatModel) renderStatusLine() string {
	parts := []string{}

	if icon := m.procState.Icon(); icon != "" {
		parts = append(parts, icon+" "+m.procState.DisplayName())
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.counter != nil {
		count := m.counter.CountMessages(m.transcript.Messages())
		parts = append(parts, fmt.Sprintf("~%d tokens", count))
	}

	return m.styles.StatusLine.Render(strings.Join(parts, "  "))
}

func (m *chatModel) renderMessage(msg chat.Message, tracked, live bool) string {
	switch msg.Role {
	case chat.RoleUser:
		return m.styles.UserMessage.Render("You: " + msg.Content)
	case chat.RoleSystem:
		return m.styles.SystemMessage.Render(msg.Content)
	case chat.RoleError:
		return m.styles.ErrorMessage.Render(msg.Content)
	case chat.RoleAssistant:
		return m.renderAssistant(msg, tracked, live)
	default:
		return m.styles.DefaultMessage.Render(msg.Content)
	}
}

// renderAssistant splits the content into narrative and reasoning spans and
// applies the tracked collapse state. Messages from earlier turns render
// their reasoning collapsed.
func (m *chatModel) renderAssistant(msg chat.Message, tracked, live bool) string {
	segs := segment.Split(msg.Content)

	if len(segs) == 0 {
		if live {
			return m.styles.AssistantMessage.Render("Assistant: ") + m.styles.Cursor.Render(streamingCursor)
		}
		return m.styles.AssistantMessage.Render("Assistant:")
	}

	var parts []string
	labelled := false
	for i, seg := range segs {
		switch seg.Kind {
		case segment.KindReasoning:
			parts = append(parts, m.renderReasoning(seg, tracked, live))
		default:
			text := seg.Content
			if live && i == len(segs)-1 {
				text += m.styles.Cursor.Render(streamingCursor)
			}
			// Only the first narrative part carries the speaker label;
			// parts after a reasoning span continue the same reply.
			if !labelled {
				text = "Assistant: " + text
				labelled = true
			}
			parts = append(parts, m.styles.AssistantMessage.Render(text))
		}
	}
	return strings.Join(parts, "\n")
}

func (m *chatModel) renderReasoning(seg segment.Segment, tracked, live bool) string {
	collapsed := true
	if tracked && m.tracker != nil {
		collapsed = m.tracker.Collapsed(seg.Ordinal)
	}

	if collapsed {
		return m.styles.ReasoningLabel.Render(fmt.Sprintf("▸ thinking (%d chars)", len(seg.Content)))
	}

	header := m.styles.ReasoningLabel.Render("▾ thinking")
	body := seg.Content
	if seg.Open && live {
		body += streamingCursor
	}
	return header + "\n" + m.styles.ReasoningText.Render(body)
}
