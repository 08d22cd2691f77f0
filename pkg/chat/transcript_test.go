package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript(t *testing.T) {
	t.Run("should append and look up by id", func(t *testing.T) {
		tr := NewTranscript()
		msg := NewUserMessage("hello")
		tr.Append(msg)

		found, ok := tr.FindByID(msg.ID)
		require.True(t, ok)
		assert.Equal(t, "hello", found.Content)

		_, ok = tr.FindByID("no-such-id")
		assert.False(t, ok)
	})

	t.Run("should update content in place", func(t *testing.T) {
		tr := NewTranscript()
		msg := NewAssistantMessage("")
		tr.Append(msg)

		assert.True(t, tr.Update(msg.ID, "streamed"))
		found, _ := tr.FindByID(msg.ID)
		assert.Equal(t, "streamed", found.Content)

		assert.False(t, tr.Update("no-such-id", "x"))
	})

	t.Run("should find the most recent message by role", func(t *testing.T) {
		tr := NewTranscript()
		first := NewAssistantMessage("first")
		second := NewAssistantMessage("second")
		tr.Append(first)
		tr.Append(NewUserMessage("between"))
		tr.Append(second)

		found, ok := tr.FindLastByRole(RoleAssistant)
		require.True(t, ok)
		assert.Equal(t, second.ID, found.ID)

		_, ok = tr.FindLastByRole(RoleSystem)
		assert.False(t, ok)
	})

	t.Run("should delete by id", func(t *testing.T) {
		tr := NewTranscript()
		msg := NewUserMessage("to delete")
		tr.Append(msg)

		assert.True(t, tr.Delete(msg.ID))
		assert.Equal(t, 0, tr.Len())
		assert.False(t, tr.Delete(msg.ID))
	})

	t.Run("should snapshot messages as a copy", func(t *testing.T) {
		tr := NewTranscript()
		tr.Append(NewUserMessage("one"))

		snapshot := tr.Messages()
		snapshot[0].Content = "mutated"

		fresh := tr.Messages()
		assert.Equal(t, "one", fresh[0].Content)
	})

	t.Run("should replace contents on reload", func(t *testing.T) {
		tr := NewTranscript()
		tr.Append(NewUserMessage("old"))

		tr.Replace([]Message{NewUserMessage("new one"), NewAssistantMessage("new two")})
		assert.Equal(t, 2, tr.Len())
		assert.Equal(t, "new one", tr.Messages()[0].Content)
	})

	t.Run("should prepend a system message when none is present", func(t *testing.T) {
		tr := NewTranscript()
		tr.Append(NewUserMessage("hello"))

		tr.EnsureLeadingSystem("be helpful")
		msgs := tr.Messages()
		require.Equal(t, 2, len(msgs))
		assert.Equal(t, RoleSystem, msgs[0].Role)
		assert.Equal(t, "be helpful", msgs[0].Content)

		tr.EnsureLeadingSystem("different prompt")
		assert.Equal(t, 2, tr.Len())

		empty := NewTranscript()
		empty.EnsureLeadingSystem("")
		assert.Equal(t, 0, empty.Len())
	})

	t.Run("should clear all messages", func(t *testing.T) {
		tr := NewTranscript()
		tr.Append(NewUserMessage("x"))
		tr.Clear()
		assert.Equal(t, 0, tr.Len())
	})
}
