package process

// State describes what the client is doing with the provider, for display
// in the status line.
type State string

const (
	// StateIdle indicates no active request
	StateIdle State = ""

	// StateSending indicates the request is on its way to the provider
	StateSending State = "sending"

	// StateReceiving indicates response chunks are arriving
	StateReceiving State = "receiving"

	// StateThinking indicates the newest content is inside a reasoning span
	StateThinking State = "thinking"
)

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// Icon returns the status line icon for the state
func (s State) Icon() string {
	switch s {
	case StateSending:
		return "↑"
	case StateReceiving:
		return "↓"
	case StateThinking:
		return "∴"
	default:
		return ""
	}
}

// DisplayName returns a human-readable name for the state
func (s State) DisplayName() string {
	switch s {
	case StateSending:
		return "Sending"
	case StateReceiving:
		return "Receiving"
	case StateThinking:
		return "Thinking"
	default:
		return "Ready"
	}
}
