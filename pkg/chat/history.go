package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwannatoa/ooc-app/pkg/segment"
)

// History persists a transcript to disk as JSON. Reasoning spans are stripped
// from assistant messages before saving; only narrative text is kept.
type History struct {
	filePath string
}

// NewHistory creates a history store at the given file path.
func NewHistory(filePath string) (*History, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &History{filePath: filePath}, nil
}

type historyFile struct {
	Messages []Message `json:"messages"`
}

// Save writes the transcript to disk. Assistant messages are saved with
// reasoning spans removed; error messages are not persisted at all.
func (h *History) Save(t *Transcript) error {
	var out historyFile
	for _, msg := range t.Messages() {
		if msg.IsError() {
			continue
		}
		if msg.IsAssistant() {
			msg = msg.WithContent(segment.Narrative(msg.Content))
		}
		if msg.IsEmpty() && !msg.IsSystem() {
			continue
		}
		out.Messages = append(out.Messages, msg)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(h.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	return nil
}

// Load reads persisted messages into the transcript, replacing its contents.
// A missing file is not an error; the transcript is left empty.
func (h *History) Load(t *Transcript) error {
	data, err := os.ReadFile(h.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Clear()
			return nil
		}
		return fmt.Errorf("failed to read history file: %w", err)
	}

	var in historyFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to parse history file: %w", err)
	}

	t.Replace(in.Messages)
	return nil
}

// Clear removes the history file.
func (h *History) Clear() error {
	if err := os.Remove(h.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove history file: %w", err)
	}
	return nil
}
