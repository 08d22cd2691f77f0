package stream

// Handler is the contract between a streaming provider and whoever consumes
// the stream. Providers deliver both the newly received delta and the entire
// accumulated output so far; consumers are expected to work from the
// accumulated value and treat the delta as advisory.
type Handler interface {
	// OnChunk is called for each received chunk. accumulated is the full
	// output observed so far and is assumed to extend, never retract, the
	// value from the previous call.
	OnChunk(delta, accumulated string) error

	// OnComplete is called once when the stream finishes normally.
	OnComplete(finalContent string) error

	// OnError is called when the transport fails mid-stream.
	OnError(err error)
}

// HandlerFunc is a function adapter for Handler
type HandlerFunc struct {
	ChunkFunc    func(delta, accumulated string) error
	CompleteFunc func(finalContent string) error
	ErrorFunc    func(err error)
}

// OnChunk implements Handler
func (h HandlerFunc) OnChunk(delta, accumulated string) error {
	if h.ChunkFunc != nil {
		return h.ChunkFunc(delta, accumulated)
	}
	return nil
}

// OnComplete implements Handler
func (h HandlerFunc) OnComplete(finalContent string) error {
	if h.CompleteFunc != nil {
		return h.CompleteFunc(finalContent)
	}
	return nil
}

// OnError implements Handler
func (h HandlerFunc) OnError(err error) {
	if h.ErrorFunc != nil {
		h.ErrorFunc(err)
	}
}

// Tee fans a stream out to multiple handlers in order. The first chunk error
// stops the fan-out and is returned to the provider.
func Tee(handlers ...Handler) Handler {
	return HandlerFunc{
		ChunkFunc: func(delta, accumulated string) error {
			for _, h := range handlers {
				if err := h.OnChunk(delta, accumulated); err != nil {
					return err
				}
			}
			return nil
		},
		CompleteFunc: func(finalContent string) error {
			for _, h := range handlers {
				if err := h.OnComplete(finalContent); err != nil {
					return err
				}
			}
			return nil
		},
		ErrorFunc: func(err error) {
			for _, h := range handlers {
				h.OnError(err)
			}
		},
	}
}

var _ Handler = HandlerFunc{}
