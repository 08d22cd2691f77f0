package stream

// SessionState tracks where a stream session is in its lifecycle.
type SessionState int

const (
	StateIdle SessionState = iota
	StateAwaitingFirstChunk
	StateStreaming
	StateSettled
	StateAborted
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingFirstChunk:
		return "awaiting_first_chunk"
	case StateStreaming:
		return "streaming"
	case StateSettled:
		return "settled"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further writes can occur in this state.
func (s SessionState) Terminal() bool {
	return s == StateSettled || s == StateAborted
}

// session is the ephemeral per-stream bookkeeping: which transcript entry is
// the live write target, how many chunks have been applied, and where the
// session is in its lifecycle.
type session struct {
	id         string
	targetID   string
	chunkCount int
	state      SessionState
}
