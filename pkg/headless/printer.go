package headless

import (
	"fmt"
	"strings"
	"sync"

	"github.com/iwannatoa/ooc-app/pkg/segment"
)

// streamPrinter writes streamed output to stdout as it arrives. When
// showThinking is false, reasoning spans are stripped and only narrative
// text is printed.
type streamPrinter struct {
	showThinking bool
	printed      string
	mu           sync.Mutex
}

func newStreamPrinter(showThinking bool) *streamPrinter {
	return &streamPrinter{showThinking: showThinking}
}

func (p *streamPrinter) OnChunk(delta, accumulated string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.print(p.render(accumulated))
	return nil
}

func (p *streamPrinter) OnComplete(finalContent string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.print(p.render(finalContent))
	if p.printed != "" {
		fmt.Println()
	}
	return nil
}

func (p *streamPrinter) OnError(err error) {}

// render produces the view of the accumulated text that should reach
// stdout. Split holds back partial markers, so the result only ever grows
// as the stream extends.
func (p *streamPrinter) render(accumulated string) string {
	if p.showThinking {
		return accumulated
	}

	var parts []string
	for _, seg := range segment.Split(accumulated) {
		if seg.Kind == segment.KindText {
			parts = append(parts, seg.Content)
		}
	}
	return strings.Join(parts, " ")
}

// print emits only the part of rendered that extends what was already
// written. If the rendered view ever disagrees with the written prefix,
// nothing is printed until it grows past it again.
func (p *streamPrinter) print(rendered string) {
	if !strings.HasPrefix(rendered, p.printed) {
		return
	}
	suffix := rendered[len(p.printed):]
	if suffix == "" {
		return
	}
	fmt.Print(suffix)
	p.printed = rendered
}
