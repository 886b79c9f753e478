// Package llm is the single integration point with remote completion
// endpoints. Both chunk summarization and final answer generation go
// through the Provider interface; callers own prompt construction, the
// gateway owns transport and failure classification.
package llm

import (
	"context"
	"fmt"
	"sync"
)

// Message roles recognized by the gateway.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents one entry of an ordered chat prompt.
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// ChatRequest represents a completion request to the LLM.
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// ChatResponse represents a completion response from the LLM.
type ChatResponse struct {
	Content      string `json:"content"`
	StopReason   string `json:"stop_reason"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	Model        string `json:"model"`
}

// Provider is the interface for LLM completion providers.
type Provider interface {
	// Chat sends a completion request and returns the first completion.
	// Failures are returned as classified pipeline errors; see Classify.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// Namer is implemented by providers that report which backend they wrap.
type Namer interface {
	Name() string
}

// ProviderName returns the backend name of p, or "unknown".
func ProviderName(p Provider) string {
	if n, ok := p.(Namer); ok {
		return n.Name()
	}
	return "unknown"
}

// --- Mock Provider for Testing ---

// MockProvider is a scriptable in-memory Provider for tests. It records
// every request so tests can assert on outgoing prompt payloads. Safe for
// concurrent use; the reducer fans calls out in parallel.
type MockProvider struct {
	mu        sync.Mutex
	responses []string
	err       error
	requests  []ChatRequest

	// ChatFunc can be overridden for custom behavior
	ChatFunc func(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// NewMockProvider creates a new mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// SetResponse sets a single response returned for every call.
func (p *MockProvider) SetResponse(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = []string{content}
}

// QueueResponses sets responses consumed one per call, in order. The last
// response repeats once the queue is exhausted.
func (p *MockProvider) QueueResponses(contents ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = contents
}

// SetError sets an error to return from every call.
func (p *MockProvider) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Requests returns a copy of all recorded requests in call order.
func (p *MockProvider) Requests() []ChatRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ChatRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

// LastRequest returns the most recent request, or nil.
func (p *MockProvider) LastRequest() *ChatRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return nil
	}
	req := p.requests[len(p.requests)-1]
	return &req
}

// CallCount returns the number of Chat calls made.
func (p *MockProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// Reset clears recorded requests.
func (p *MockProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = nil
}

// Name implements Namer.
func (p *MockProvider) Name() string {
	return "mock"
}

// Chat implements the Provider interface.
func (p *MockProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	call := len(p.requests)
	err := p.err
	var content string
	switch n := len(p.responses); {
	case n == 0:
		content = ""
	case call <= n:
		content = p.responses[call-1]
	default:
		content = p.responses[n-1]
	}
	fn := p.ChatFunc
	p.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	if err != nil {
		return nil, err
	}

	return &ChatResponse{
		Content:    content,
		StopReason: "end_turn",
		Model:      "mock",
	}, nil
}

// validateRequest rejects requests no provider could serve.
func validateRequest(req ChatRequest) error {
	if len(req.Messages) == 0 {
		return fmt.Errorf("chat request has no messages")
	}
	return nil
}
