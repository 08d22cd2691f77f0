package segment

import "strings"

// Marker literals delimiting a reasoning span. These are agreed with the
// generation backend and fixed at compile time, not discovered at runtime.
const (
	OpenMarker  = "<think>"
	CloseMarker = "</think>"
)

// Kind distinguishes narrative text from reasoning spans.
type Kind int

const (
	KindText Kind = iota
	KindReasoning
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindReasoning:
		return "reasoning"
	default:
		return "unknown"
	}
}

// Segment is one typed span of generated output. Ordinal is the segment's
// position in the emitted list and is stable under monotonic growth of the
// input, which lets per-segment view state key on it across chunks.
type Segment struct {
	Kind    Kind
	Content string
	Open    bool
	Ordinal int
}

// Split segments accumulated output into alternating narrative and reasoning
// spans. It is a total function: every input, including the empty string and
// unterminated markers, yields a well-formed segment list.
//
// The scan is left to right. Text before an open marker becomes a text
// segment unless blank after trimming. After an open marker, the span up to
// the matching close marker is a closed reasoning segment; if no close marker
// follows, the remainder is a single open reasoning segment and the scan
// ends, so an open segment can only ever be the last element. An open marker
// inside an unterminated span is ordinary content, not a nested boundary.
//
// The whole input is rescanned on every call rather than keeping parser state
// between chunks. O(n) per call, and segments computed from a shorter input
// are always a prefix of those computed from any extension of it, except that
// the last segment may grow or flip from open to closed.
func Split(text string) []Segment {
	segments := make([]Segment, 0, 2)
	rest := text

	for {
		idx := strings.Index(rest, OpenMarker)
		if idx == -1 {
			// A partial open marker at the very end may still complete
			// in a later chunk; hold it back so the segment list stays
			// a stable prefix of future parses.
			segments = appendText(segments, trimPartialMarker(rest, OpenMarker))
			return segments
		}

		segments = appendText(segments, rest[:idx])
		rest = rest[idx+len(OpenMarker):]

		end := strings.Index(rest, CloseMarker)
		if end == -1 {
			// Unterminated span: the rest of the input is one open
			// reasoning segment, necessarily the last. A partial close
			// marker at the end is held back for the same reason as above.
			segments = append(segments, Segment{
				Kind:    KindReasoning,
				Content: strings.TrimSpace(trimPartialMarker(rest, CloseMarker)),
				Open:    true,
				Ordinal: len(segments),
			})
			return segments
		}

		segments = append(segments, Segment{
			Kind:    KindReasoning,
			Content: strings.TrimSpace(rest[:end]),
			Ordinal: len(segments),
		})
		rest = rest[end+len(CloseMarker):]
	}
}

// appendText emits a text segment unless the span is blank. Reasoning
// segments are always emitted, even empty, because they carry view state;
// blank text segments carry nothing and are dropped.
func appendText(segments []Segment, span string) []Segment {
	trimmed := strings.TrimSpace(span)
	if trimmed == "" {
		return segments
	}
	return append(segments, Segment{
		Kind:    KindText,
		Content: trimmed,
		Ordinal: len(segments),
	})
}

// trimPartialMarker removes a trailing proper prefix of marker from s, if
// present. "Hello <thi" becomes "Hello " because the tail may still turn out
// to be a marker once more of the stream arrives.
func trimPartialMarker(s, marker string) string {
	max := len(marker) - 1
	if max > len(s) {
		max = len(s)
	}
	for l := max; l > 0; l-- {
		if strings.HasSuffix(s, marker[:l]) {
			return s[:len(s)-l]
		}
	}
	return s
}

// Narrative returns the input with all reasoning spans and marker literals
// removed. Used when persisting assistant messages.
func Narrative(text string) string {
	var b strings.Builder
	rest := text

	for {
		idx := strings.Index(rest, OpenMarker)
		if idx == -1 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:idx])
		rest = rest[idx+len(OpenMarker):]

		end := strings.Index(rest, CloseMarker)
		if end == -1 {
			// Unterminated span runs to the end of the input.
			break
		}
		rest = rest[end+len(CloseMarker):]
	}

	return strings.TrimSpace(b.String())
}

// Reasoning returns all reasoning span contents joined with blank lines.
func Reasoning(text string) string {
	var parts []string
	for _, seg := range Split(text) {
		if seg.Kind == KindReasoning && seg.Content != "" {
			parts = append(parts, seg.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// HasOpen reports whether the segment list ends in an open reasoning span.
func HasOpen(segments []Segment) bool {
	if len(segments) == 0 {
		return false
	}
	return segments[len(segments)-1].Open
}

// Reassemble reconstructs input text from a segment list, re-inserting the
// marker literals around reasoning spans.
func Reassemble(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Kind == KindReasoning {
			b.WriteString(OpenMarker)
			b.WriteString(seg.Content)
			if !seg.Open {
				b.WriteString(CloseMarker)
			}
			continue
		}
		b.WriteString(seg.Content)
	}
	return b.String()
}
