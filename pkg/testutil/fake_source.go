package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/stream"
)

// FakeSource is a provider stand-in that streams a canned response in fixed
// size chunks.
type FakeSource struct {
	Response   string
	ChunkSize  int
	ChunkDelay time.Duration

	// FailAfter makes the stream return Err after that many chunks.
	// Zero means never fail.
	FailAfter int
	Err       error

	// Calls records the message snapshots passed to Stream.
	Calls [][]chat.Message
}

// NewFakeSource creates a fake source streaming the given response five
// characters at a time.
func NewFakeSource(response string) *FakeSource {
	return &FakeSource{
		Response:  response,
		ChunkSize: 5,
	}
}

func (f *FakeSource) Name() string  { return "fake" }
func (f *FakeSource) Model() string { return "fake-model" }

func (f *FakeSource) Stream(ctx context.Context, messages []chat.Message, handler stream.Handler) error {
	f.Calls = append(f.Calls, messages)

	var acc strings.Builder
	chunkCount := 0
	rest := f.Response

	for len(rest) > 0 {
		if err := ctx.Err(); err != nil {
			handler.OnError(err)
			return err
		}
		if f.FailAfter > 0 && chunkCount >= f.FailAfter {
			handler.OnError(f.Err)
			return f.Err
		}

		size := f.ChunkSize
		if size <= 0 {
			size = 5
		}
		if size > len(rest) {
			size = len(rest)
		}
		chunk := rest[:size]
		rest = rest[size:]

		acc.WriteString(chunk)
		if err := handler.OnChunk(chunk, acc.String()); err != nil {
			handler.OnError(err)
			return err
		}
		chunkCount++

		if f.ChunkDelay > 0 {
			time.Sleep(f.ChunkDelay)
		}
	}

	return handler.OnComplete(acc.String())
}
