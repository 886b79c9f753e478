package summarize

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/askdoc/askdoc/errors"
	"github.com/askdoc/askdoc/llm"
)

func newTestReducer(mock *llm.MockProvider, cfg Config) *Reducer {
	return NewReducer(mock, cfg, nil)
}

// ============================================================================
// 1. Chunk summarization prompts
// ============================================================================

func TestSummarizeChunkPrompt(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.SetResponse("a summary")
	r := newTestReducer(mock, Config{})

	got, err := r.SummarizeChunk(context.Background(), "some chunk text")
	if err != nil {
		t.Fatalf("SummarizeChunk() error: %v", err)
	}
	if got != "a summary" {
		t.Errorf("SummarizeChunk() = %q, want %q", got, "a summary")
	}

	req := mock.LastRequest()
	if req == nil {
		t.Fatal("no request recorded")
	}
	if len(req.Messages) != 2 {
		t.Fatalf("request has %d messages, want 2", len(req.Messages))
	}
	if req.Messages[0].Role != llm.RoleSystem {
		t.Errorf("first message role = %q, want system", req.Messages[0].Role)
	}
	if !strings.Contains(strings.ToLower(req.Messages[0].Content), "summarize") {
		t.Errorf("system message %q lacks the summarize instruction", req.Messages[0].Content)
	}
	if req.Messages[1].Content != "some chunk text" {
		t.Errorf("user message = %q, want the chunk text", req.Messages[1].Content)
	}
	if req.MaxTokens != DefaultSummaryTokens {
		t.Errorf("MaxTokens = %d, want %d", req.MaxTokens, DefaultSummaryTokens)
	}
	if req.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", req.Temperature, DefaultTemperature)
	}
}

// ============================================================================
// 2. Order-preserving reduction
// ============================================================================

func TestReduceJoinsInChunkOrder(t *testing.T) {
	// Chunks small enough that "aaabbbccc" splits into three, and a provider
	// that echoes a marker derived from each chunk's content.
	mock := llm.NewMockProvider()
	mock.ChatFunc = func(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
		chunkText := req.Messages[len(req.Messages)-1].Content
		return &llm.ChatResponse{Content: "sum(" + chunkText + ")"}, nil
	}

	r := newTestReducer(mock, Config{ChunkSize: 3, Concurrency: 4})
	got, err := r.Reduce(context.Background(), "aaabbbccc")
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}
	want := "sum(aaa) sum(bbb) sum(ccc)"
	if got != want {
		t.Errorf("Reduce() = %q, want %q", got, want)
	}
}

func TestReduceEmptyInput(t *testing.T) {
	mock := llm.NewMockProvider()
	r := newTestReducer(mock, Config{})

	got, err := r.Reduce(context.Background(), "")
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}
	if got != "" {
		t.Errorf("Reduce(\"\") = %q, want empty", got)
	}
	if mock.CallCount() != 0 {
		t.Errorf("Reduce(\"\") made %d gateway calls, want 0", mock.CallCount())
	}
}

func TestReduceSingleChunk(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.SetResponse("whole summary")
	r := newTestReducer(mock, Config{ChunkSize: 100})

	got, err := r.Reduce(context.Background(), "short text")
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}
	if got != "whole summary" {
		t.Errorf("Reduce() = %q, want %q", got, "whole summary")
	}
	if mock.CallCount() != 1 {
		t.Errorf("made %d gateway calls, want 1", mock.CallCount())
	}
}

// ============================================================================
// 3. Partial and total failure
// ============================================================================

func TestReduceSkipsFailedChunks(t *testing.T) {
	// Fail only the middle chunk; the join must keep the remaining summaries
	// in order with no placeholder for the failure.
	mock := llm.NewMockProvider()
	mock.ChatFunc = func(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
		chunkText := req.Messages[len(req.Messages)-1].Content
		if chunkText == "bbb" {
			return nil, fmt.Errorf("503 service unavailable")
		}
		return &llm.ChatResponse{Content: "sum(" + chunkText + ")"}, nil
	}

	r := newTestReducer(mock, Config{ChunkSize: 3})
	got, results, err := r.ReduceDetailed(context.Background(), "aaabbbccc")
	if err != nil {
		t.Fatalf("ReduceDetailed() error: %v", err)
	}
	if want := "sum(aaa) sum(ccc)"; got != want {
		t.Errorf("ReduceDetailed() = %q, want %q", got, want)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Error("healthy chunks should carry no error")
	}
	if results[1].Err == nil {
		t.Error("failed chunk should carry its error")
	}
	if results[1].Index != 1 {
		t.Errorf("failed chunk Index = %d, want 1", results[1].Index)
	}
}

func TestReduceFailsWhenAllChunksFail(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.SetError(errors.Unavailable("endpoint down"))

	r := newTestReducer(mock, Config{ChunkSize: 3})
	_, err := r.Reduce(context.Background(), "aaabbbccc")
	if err == nil {
		t.Fatal("expected error when every chunk fails")
	}
	// The classification of the underlying failure survives the wrap.
	if errors.CodeOf(err) != errors.ErrCodeUnavailable {
		t.Errorf("CodeOf() = %v, want %v", errors.CodeOf(err), errors.ErrCodeUnavailable)
	}
}

// ============================================================================
// 4. Bounded concurrency
// ============================================================================

func TestReduceRespectsConcurrencyLimit(t *testing.T) {
	var inFlight, maxInFlight int64
	var mu sync.Mutex

	mock := llm.NewMockProvider()
	mock.ChatFunc = func(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
		n := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if n > maxInFlight {
			maxInFlight = n
		}
		mu.Unlock()
		defer atomic.AddInt64(&inFlight, -1)
		return &llm.ChatResponse{Content: "s"}, nil
	}

	r := newTestReducer(mock, Config{ChunkSize: 1, Concurrency: 2})
	if _, err := r.Reduce(context.Background(), strings.Repeat("x", 20)); err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if maxInFlight > 2 {
		t.Errorf("observed %d concurrent calls, limit is 2", maxInFlight)
	}
}

// ============================================================================
// 5. Defaults
// ============================================================================

func TestConfigDefaults(t *testing.T) {
	r := newTestReducer(llm.NewMockProvider(), Config{})
	if r.ChunkSize() != DefaultChunkSize {
		t.Errorf("ChunkSize() = %d, want %d", r.ChunkSize(), DefaultChunkSize)
	}

	r = newTestReducer(llm.NewMockProvider(), Config{ChunkSize: 42})
	if r.ChunkSize() != 42 {
		t.Errorf("ChunkSize() = %d, want 42", r.ChunkSize())
	}
}
