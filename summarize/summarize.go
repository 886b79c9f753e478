// Package summarize reduces a long document to a shorter one by
// summarizing bounded chunks through the LLM gateway and re-joining the
// results in document order.
package summarize

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/askdoc/askdoc/chunk"
	"github.com/askdoc/askdoc/errors"
	"github.com/askdoc/askdoc/llm"
	"github.com/askdoc/askdoc/logging"
)

// Defaults for the reduction pass. Summaries are lossy compression, not
// generation, so the temperature stays low.
const (
	DefaultChunkSize     = chunk.DefaultSize
	DefaultSummaryTokens = 300
	DefaultTemperature   = 0.5
	DefaultConcurrency   = 4
)

// summaryInstruction is the fixed system prompt for chunk compression.
const summaryInstruction = "Summarize the following text briefly."

// ChunkResult is the outcome of summarizing one chunk. Failed chunks carry
// their error instead of being silently dropped; the join policy decides
// what happens to them.
type ChunkResult struct {
	Index   int
	Summary string
	Err     error
}

// Config tunes a Reducer. Zero values fall back to the package defaults.
type Config struct {
	ChunkSize     int     // character budget per chunk
	SummaryTokens int     // output cap per chunk summary
	Temperature   float64 // sampling temperature for summaries
	Concurrency   int     // max in-flight summarization calls
}

func (c *Config) applyDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.SummaryTokens <= 0 {
		c.SummaryTokens = DefaultSummaryTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
}

// Reducer chunks oversized text and compresses each chunk via the gateway.
type Reducer struct {
	gateway llm.Provider
	cfg     Config
	log     *logging.Logger
}

// NewReducer creates a Reducer over the given gateway.
func NewReducer(gateway llm.Provider, cfg Config, log *logging.Logger) *Reducer {
	cfg.applyDefaults()
	if log == nil {
		log = logging.New()
	}
	return &Reducer{
		gateway: gateway,
		cfg:     cfg,
		log:     log.WithComponent("summarize"),
	}
}

// SummarizeChunk compresses one chunk into a short summary.
func (r *Reducer) SummarizeChunk(ctx context.Context, text string) (string, error) {
	resp, err := r.gateway.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: summaryInstruction},
			{Role: llm.RoleUser, Content: text},
		},
		MaxTokens:   r.cfg.SummaryTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "summarizing chunk")
	}
	return resp.Content, nil
}

// Reduce splits text into chunks, summarizes every chunk, and joins the
// summaries with single spaces in original chunk order. Chunk calls run
// concurrently under the configured limit; chunks are independent, so only
// the re-join imposes ordering.
//
// A failed chunk becomes a missing contribution: it is logged and skipped,
// and the remaining summaries still form the result. Reduce fails only when
// no chunk succeeds. The output is not re-checked against any budget here;
// one pass is all callers get.
func (r *Reducer) Reduce(ctx context.Context, text string) (string, error) {
	chunks := chunk.Split(text, r.cfg.ChunkSize)
	if len(chunks) == 0 {
		return "", nil
	}

	results := r.summarizeAll(ctx, chunks)

	var (
		parts   []string
		failed  int
		lastErr error
	)
	for _, res := range results {
		if res.Err != nil {
			failed++
			lastErr = res.Err
			continue
		}
		if res.Summary != "" {
			parts = append(parts, res.Summary)
		}
	}

	if len(parts) == 0 && failed > 0 {
		return "", errors.Wrap(lastErr, "all chunk summarizations failed")
	}
	return strings.Join(parts, " "), nil
}

// ReduceDetailed is Reduce with the per-chunk outcomes exposed, for callers
// that want to report partial failures instead of absorbing them.
func (r *Reducer) ReduceDetailed(ctx context.Context, text string) (string, []ChunkResult, error) {
	chunks := chunk.Split(text, r.cfg.ChunkSize)
	if len(chunks) == 0 {
		return "", nil, nil
	}

	results := r.summarizeAll(ctx, chunks)

	var parts []string
	var lastErr error
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			lastErr = res.Err
			continue
		}
		if res.Summary != "" {
			parts = append(parts, res.Summary)
		}
	}

	if len(parts) == 0 && failed > 0 {
		return "", results, errors.Wrap(lastErr, "all chunk summarizations failed")
	}
	return strings.Join(parts, " "), results, nil
}

// summarizeAll fans the chunk calls out under the concurrency limit and
// returns results indexed by chunk position.
func (r *Reducer) summarizeAll(ctx context.Context, chunks []string) []ChunkResult {
	results := make([]ChunkResult, len(chunks))

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.cfg.Concurrency)

	for i, c := range chunks {
		wg.Add(1)
		go func(i int, c string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			start := time.Now()
			summary, err := r.SummarizeChunk(ctx, c)
			r.log.ChunkSummarized(i, time.Since(start), err)

			results[i] = ChunkResult{Index: i, Summary: summary, Err: err}
		}(i, c)
	}
	wg.Wait()

	return results
}

// ChunkSize returns the configured chunk budget, for callers that report
// reduction decisions.
func (r *Reducer) ChunkSize() int {
	return r.cfg.ChunkSize
}
