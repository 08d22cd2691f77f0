package chat

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	t.Run("should round trip a transcript through disk", func(t *testing.T) {
		h, err := NewHistory(filepath.Join(t.TempDir(), "history.json"))
		require.NoError(t, err)

		tr := NewTranscript()
		tr.Append(NewUserMessage("tell me a story"))
		tr.Append(NewAssistantMessage("Once upon a time"))
		require.NoError(t, h.Save(tr))

		loaded := NewTranscript()
		require.NoError(t, h.Load(loaded))

		require.Equal(t, 2, loaded.Len())
		messages := loaded.Messages()
		assert.Equal(t, "tell me a story", messages[0].Content)
		assert.Equal(t, "Once upon a time", messages[1].Content)
	})

	t.Run("should strip reasoning from assistant messages on save", func(t *testing.T) {
		h, err := NewHistory(filepath.Join(t.TempDir(), "history.json"))
		require.NoError(t, err)

		tr := NewTranscript()
		tr.Append(NewAssistantMessage("<think>plot it out</think>Once upon a time"))
		require.NoError(t, h.Save(tr))

		loaded := NewTranscript()
		require.NoError(t, h.Load(loaded))

		require.Equal(t, 1, loaded.Len())
		assert.Equal(t, "Once upon a time", loaded.Messages()[0].Content)
	})

	t.Run("should not persist error messages or empty assistant leftovers", func(t *testing.T) {
		h, err := NewHistory(filepath.Join(t.TempDir(), "history.json"))
		require.NoError(t, err)

		tr := NewTranscript()
		tr.Append(NewUserMessage("hi"))
		tr.Append(NewErrorMessage("connection reset"))
		tr.Append(NewAssistantMessage("<think>aborted mid-reasoning"))
		require.NoError(t, h.Save(tr))

		loaded := NewTranscript()
		require.NoError(t, h.Load(loaded))

		require.Equal(t, 1, loaded.Len())
		assert.Equal(t, RoleUser, loaded.Messages()[0].Role)
	})

	t.Run("should load an empty transcript when no file exists", func(t *testing.T) {
		h, err := NewHistory(filepath.Join(t.TempDir(), "missing.json"))
		require.NoError(t, err)

		tr := NewTranscript()
		tr.Append(NewUserMessage("stale"))
		require.NoError(t, h.Load(tr))
		assert.Equal(t, 0, tr.Len())
	})

	t.Run("should remove the file on clear", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		h, err := NewHistory(path)
		require.NoError(t, err)

		tr := NewTranscript()
		tr.Append(NewUserMessage("x"))
		require.NoError(t, h.Save(tr))
		require.NoError(t, h.Clear())

		loaded := NewTranscript()
		require.NoError(t, h.Load(loaded))
		assert.Equal(t, 0, loaded.Len())
	})
}
