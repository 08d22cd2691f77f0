package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, p *streamPrinter, chunks []string) {
	t.Helper()
	acc := ""
	for _, c := range chunks {
		acc += c
		require.NoError(t, p.OnChunk(c, acc))
	}
	require.NoError(t, p.OnComplete(acc))
}

func TestStreamPrinter(t *testing.T) {
	t.Run("should accumulate the full text when thinking is shown", func(t *testing.T) {
		p := newStreamPrinter(true)
		feed(t, p, []string{"<think>plan</think>", "Hello", " world"})
		assert.Equal(t, "<think>plan</think>Hello world", p.printed)
	})

	t.Run("should strip reasoning spans when thinking is hidden", func(t *testing.T) {
		p := newStreamPrinter(false)
		feed(t, p, []string{"<think>secret ", "plan</think>", "Hello", " world"})
		assert.Equal(t, "Hello world", p.printed)
	})

	t.Run("should hold back output while a marker may be forming", func(t *testing.T) {
		p := newStreamPrinter(false)
		require.NoError(t, p.OnChunk("Hello <th", "Hello <th"))
		assert.Equal(t, "Hello", p.printed)

		require.NoError(t, p.OnChunk("at", "Hello <that"))
		assert.Equal(t, "Hello <that", p.printed)
	})

	t.Run("should print nothing for a reasoning-only response", func(t *testing.T) {
		p := newStreamPrinter(false)
		feed(t, p, []string{"<think>all internal</think>"})
		assert.Empty(t, p.printed)
	})
}
