package chat

// StreamChunk is what the provider goroutine pushes into the model's channel.
// SessionID identifies which stream produced it; the channel outlives any one
// session, so chunks from a cancelled stream can still be queued when the
// next one starts and must be told apart.
type StreamChunk struct {
	SessionID   string
	Delta       string
	Accumulated string
	IsEnd       bool
	Final       string
	Err         error
}

// chunkMsg wraps a StreamChunk as a bubbletea message.
type chunkMsg StreamChunk

type errMsg error
