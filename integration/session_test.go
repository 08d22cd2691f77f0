package integration

import (
	"context"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/iwannatoa/ooc-app/pkg/chat"
	"github.com/iwannatoa/ooc-app/pkg/llm"
	"github.com/iwannatoa/ooc-app/pkg/segment"
	"github.com/iwannatoa/ooc-app/pkg/stream"
)

// scriptedSource replays a fixed chunk sequence through a handler, the same
// way a provider client does.
type scriptedSource struct {
	chunks []string

	// betweenChunks runs after each chunk is delivered, letting specs mutate
	// the transcript mid-stream.
	betweenChunks func(chunkIndex int)
}

func (s *scriptedSource) Name() string  { return "scripted" }
func (s *scriptedSource) Model() string { return "test-model" }

func (s *scriptedSource) Stream(ctx context.Context, messages []chat.Message, handler stream.Handler) error {
	var acc strings.Builder
	for i, chunk := range s.chunks {
		if err := ctx.Err(); err != nil {
			handler.OnError(err)
			return err
		}
		acc.WriteString(chunk)
		if err := handler.OnChunk(chunk, acc.String()); err != nil {
			handler.OnError(err)
			return err
		}
		if s.betweenChunks != nil {
			s.betweenChunks(i)
		}
	}
	return handler.OnComplete(acc.String())
}

var _ = Describe("Streaming session", func() {
	var (
		transcript *chat.Transcript
		reconciler *stream.Reconciler
	)

	BeforeEach(func() {
		transcript = chat.NewTranscript()
		transcript.Append(chat.NewUserMessage("tell me a story"))
		reconciler = stream.NewReconciler(transcript)
	})

	Describe("a full response with reasoning", func() {
		chunks := []string{
			"<think>plan", "ning the plot</think>", "Once upon", " a time.",
		}

		It("reconciles every chunk into a single assistant message", func() {
			reconciler.Begin()
			source := &scriptedSource{chunks: chunks}

			err := source.Stream(context.Background(), transcript.Messages(), reconciler)
			Expect(err).NotTo(HaveOccurred())

			Expect(transcript.Len()).To(Equal(2))
			final, ok := transcript.FindLastByRole(chat.RoleAssistant)
			Expect(ok).To(BeTrue())
			Expect(final.Content).To(Equal(strings.Join(chunks, "")))
		})

		It("collapses the reasoning span exactly once when it closes", func() {
			completions := []int{}
			tracker := stream.NewReasoningTracker(func(ordinal int) {
				completions = append(completions, ordinal)
			})

			reconciler.Begin()
			observing := stream.HandlerFunc{
				ChunkFunc: func(delta, accumulated string) error {
					tracker.Observe(segment.Split(accumulated))
					return nil
				},
				CompleteFunc: func(finalContent string) error {
					tracker.Observe(segment.Split(finalContent))
					return nil
				},
			}

			source := &scriptedSource{chunks: chunks}
			err := source.Stream(context.Background(), transcript.Messages(), stream.Tee(reconciler, observing))
			Expect(err).NotTo(HaveOccurred())

			Expect(completions).To(Equal([]int{0}))
			Expect(tracker.Collapsed(0)).To(BeTrue())
		})
	})

	Describe("transcript mutation mid-stream", func() {
		It("recovers when the live message is deleted between chunks", func() {
			reconciler.Begin()

			source := &scriptedSource{
				chunks: []string{"part one, ", "part two, ", "part three."},
				betweenChunks: func(chunkIndex int) {
					if chunkIndex == 0 {
						if target, ok := transcript.FindByID(reconciler.TargetID()); ok {
							transcript.Delete(target.ID)
						}
					}
				},
			}

			err := source.Stream(context.Background(), transcript.Messages(), reconciler)
			Expect(err).NotTo(HaveOccurred())

			final, ok := transcript.FindLastByRole(chat.RoleAssistant)
			Expect(ok).To(BeTrue())
			Expect(final.Content).To(Equal("part one, part two, part three."))
		})
	})

	Describe("live Ollama server", func() {
		BeforeEach(func() {
			if os.Getenv("INTEGRATION_TEST") != "true" {
				Skip("Integration tests skipped. Set INTEGRATION_TEST=true to run.")
			}
		})

		It("streams a real response into the transcript", func() {
			host := os.Getenv("OLLAMA_HOST")
			if host == "" {
				host = "http://localhost:11434"
			}
			model := os.Getenv("OLLAMA_DEFAULT_MODEL")
			if model == "" {
				model = "qwen3:latest"
			}

			source := llm.NewOllamaSource(host, model, 90*time.Second)
			reconciler.Begin()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			err := source.Stream(ctx, transcript.Messages(), reconciler)
			if err != nil {
				Skip("Ollama server not available: " + err.Error())
			}

			final, ok := transcript.FindLastByRole(chat.RoleAssistant)
			Expect(ok).To(BeTrue())
			Expect(final.Content).NotTo(BeEmpty())
		})
	})
})
