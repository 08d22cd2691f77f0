package chat

import "sync"

// Transcript is the ordered message list backing a conversation view. It is
// mutated both by an active stream session and by UI-driven actions (delete,
// clear, reload), so every accessor takes the lock and writers never hold a
// message reference across calls.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

func NewTranscript() *Transcript {
	return &Transcript{
		messages: make([]Message, 0),
	}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, msg)
}

// Update replaces the content of the message with the given id. Returns false
// if no message with that id exists.
func (t *Transcript) Update(id string, content string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.messages {
		if t.messages[i].ID == id {
			t.messages[i].Content = content
			return true
		}
	}
	return false
}

// FindByID returns the message with the given id.
func (t *Transcript) FindByID(id string) (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, msg := range t.messages {
		if msg.ID == id {
			return msg, true
		}
	}
	return Message{}, false
}

// FindLastByRole returns the most recent message with the given role.
func (t *Transcript) FindLastByRole(role string) (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == role {
			return t.messages[i], true
		}
	}
	return Message{}, false
}

// Delete removes the message with the given id. Returns false if not found.
func (t *Transcript) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.messages {
		if t.messages[i].ID == id {
			t.messages = append(t.messages[:i], t.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = make([]Message, 0)
}

// EnsureLeadingSystem puts a system message with the given content at the
// head of the transcript unless one is already there. Used after reloading
// history, which may or may not have persisted the system prompt.
func (t *Transcript) EnsureLeadingSystem(content string) {
	if content == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.messages) > 0 && t.messages[0].Role == RoleSystem {
		return
	}
	t.messages = append([]Message{NewSystemMessage(content)}, t.messages...)
}

// Replace swaps the whole message list, used when reloading from history.
func (t *Transcript) Replace(messages []Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = make([]Message, len(messages))
	copy(t.messages, messages)
}

// Messages returns a snapshot copy of the message list.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]Message, len(t.messages))
	copy(result, t.messages)
	return result
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.messages)
}
