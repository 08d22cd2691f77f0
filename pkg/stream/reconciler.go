package stream

import (
	"github.com/google/uuid"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/logger"
)

// Store is the narrow transcript command set the reconciler consumes. The
// transcript may be mutated by unrelated UI actions between chunks; the
// reconciler never caches a message reference and re-resolves its target on
// every write instead of locking.
type Store interface {
	FindByID(id string) (chat.Message, bool)
	FindLastByRole(role string) (chat.Message, bool)
	Append(msg chat.Message)
	Update(id string, content string) bool
}

// Reconciler owns one stream session: it creates the placeholder transcript
// entry, applies each chunk's accumulated text to the current target, and
// recovers when the target disappears out from under it.
//
// Target resolution on each chunk, in order:
//  1. the bound target id, if still present
//  2. the most recent assistant message, adopting its id
//  3. a newly appended assistant message carrying the accumulated text
//
// A rebinding persists for the remainder of the session, so generated text is
// never dropped even if it occasionally lands in a different visual slot than
// originally intended.
type Reconciler struct {
	store   Store
	session session
	log     *logger.ComponentLogger
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{
		store: store,
		session: session{
			state: StateIdle,
		},
		log: logger.WithComponent("reconciler"),
	}
}

// Begin appends an empty placeholder assistant message and arms the session.
// Returns the placeholder id.
func (r *Reconciler) Begin() string {
	placeholder := chat.NewAssistantMessage("")
	r.store.Append(placeholder)

	r.session = session{
		id:       uuid.NewString(),
		targetID: placeholder.ID,
		state:    StateAwaitingFirstChunk,
	}

	r.log.Debug("session started", "session_id", r.session.id, "target_id", placeholder.ID)
	return placeholder.ID
}

// OnChunk applies the accumulated text to the current target message,
// re-resolving the target's identity first. Implements Handler.
func (r *Reconciler) OnChunk(delta, accumulated string) error {
	if r.session.state.Terminal() || r.session.state == StateIdle {
		return nil
	}

	r.resolveTarget(accumulated)
	r.store.Update(r.session.targetID, accumulated)
	r.session.chunkCount++
	r.session.state = StateStreaming
	return nil
}

// resolveTarget rebinds the session's target id if the bound message is gone.
func (r *Reconciler) resolveTarget(accumulated string) {
	if _, ok := r.store.FindByID(r.session.targetID); ok {
		return
	}

	// The placeholder was removed by a concurrent transcript mutation.
	// Adopt the most recent assistant message rather than losing text.
	if last, ok := r.store.FindLastByRole(chat.RoleAssistant); ok {
		r.log.Warn("target missing, adopting last assistant message",
			"session_id", r.session.id, "old_target", r.session.targetID, "new_target", last.ID)
		r.session.targetID = last.ID
		return
	}

	// No assistant message left at all: append a replacement. Preserving
	// the generated text wins over the one-append-per-session expectation
	// if the user keeps deleting mid-stream.
	replacement := chat.NewAssistantMessage(accumulated)
	r.store.Append(replacement)
	r.session.targetID = replacement.ID
	r.log.Warn("target missing, appended replacement message",
		"session_id", r.session.id, "new_target", replacement.ID)
}

// OnComplete settles the session. No writes occur after settlement.
// Implements Handler.
func (r *Reconciler) OnComplete(finalContent string) error {
	if r.session.state.Terminal() || r.session.state == StateIdle {
		return nil
	}

	if finalContent != "" {
		r.resolveTarget(finalContent)
		r.store.Update(r.session.targetID, finalContent)
	}

	r.session.state = StateSettled
	r.log.Debug("session settled",
		"session_id", r.session.id, "chunk_count", r.session.chunkCount, "target_id", r.session.targetID)
	return nil
}

// OnError aborts the session, leaving the last written partial content in
// place. The error itself is the transport's to propagate; the reconciler
// neither retries nor rewrites it. Implements Handler.
func (r *Reconciler) OnError(err error) {
	if r.session.state.Terminal() {
		return
	}

	r.session.state = StateAborted
	r.log.Error("session aborted",
		"session_id", r.session.id, "chunk_count", r.session.chunkCount, "error", err)
}

// Cancel aborts the session on behalf of the caller. No cleanup: the
// transcript keeps whatever was last written.
func (r *Reconciler) Cancel() {
	if r.session.state.Terminal() {
		return
	}

	r.session.state = StateAborted
	r.log.Debug("session cancelled",
		"session_id", r.session.id, "chunk_count", r.session.chunkCount)
}

// State returns the current session state.
func (r *Reconciler) State() SessionState {
	return r.session.state
}

// TargetID returns the id of the transcript entry currently bound as the
// live write target.
func (r *Reconciler) TargetID() string {
	return r.session.targetID
}

// ChunkCount returns how many chunks have been applied this session.
func (r *Reconciler) ChunkCount() int {
	return r.session.chunkCount
}

var _ Handler = (*Reconciler)(nil)
