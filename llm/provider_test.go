package llm

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

// ============================================================================
// 1. Mock provider scripting
// ============================================================================

func TestMockProviderSetResponse(t *testing.T) {
	mock := NewMockProvider()
	mock.SetResponse("the answer")

	for i := 0; i < 3; i++ {
		resp, err := mock.Chat(context.Background(), ChatRequest{
			Messages: []Message{{Role: RoleUser, Content: "q"}},
		})
		if err != nil {
			t.Fatalf("Chat() error: %v", err)
		}
		if resp.Content != "the answer" {
			t.Errorf("Content = %q, want %q", resp.Content, "the answer")
		}
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", mock.CallCount())
	}
}

func TestMockProviderQueueResponses(t *testing.T) {
	mock := NewMockProvider()
	mock.QueueResponses("first", "second")

	want := []string{"first", "second", "second"} // last repeats
	for i, w := range want {
		resp, err := mock.Chat(context.Background(), ChatRequest{
			Messages: []Message{{Role: RoleUser, Content: "q"}},
		})
		if err != nil {
			t.Fatalf("Chat() call %d error: %v", i, err)
		}
		if resp.Content != w {
			t.Errorf("call %d Content = %q, want %q", i, resp.Content, w)
		}
	}
}

func TestMockProviderSetError(t *testing.T) {
	mock := NewMockProvider()
	mock.SetError(fmt.Errorf("scripted failure"))

	_, err := mock.Chat(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	})
	if err == nil || err.Error() != "scripted failure" {
		t.Errorf("Chat() error = %v, want scripted failure", err)
	}
	// Failed calls still record the request.
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
}

func TestMockProviderRecordsRequests(t *testing.T) {
	mock := NewMockProvider()
	mock.SetResponse("ok")

	req := ChatRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "instructions"},
			{Role: RoleUser, Content: "question"},
		},
		MaxTokens:   300,
		Temperature: 0.5,
	}
	if _, err := mock.Chat(context.Background(), req); err != nil {
		t.Fatalf("Chat() error: %v", err)
	}

	last := mock.LastRequest()
	if last == nil {
		t.Fatal("LastRequest() = nil")
	}
	if last.MaxTokens != 300 || last.Temperature != 0.5 {
		t.Errorf("recorded request = %+v", last)
	}
	if len(last.Messages) != 2 || last.Messages[0].Role != RoleSystem {
		t.Errorf("recorded messages = %+v", last.Messages)
	}

	mock.Reset()
	if mock.CallCount() != 0 || mock.LastRequest() != nil {
		t.Error("Reset() should clear recorded requests")
	}
}

func TestMockProviderConcurrent(t *testing.T) {
	mock := NewMockProvider()
	mock.SetResponse("ok")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mock.Chat(context.Background(), ChatRequest{
				Messages: []Message{{Role: RoleUser, Content: "q"}},
			})
		}()
	}
	wg.Wait()

	if mock.CallCount() != 32 {
		t.Errorf("CallCount() = %d, want 32", mock.CallCount())
	}
}

// ============================================================================
// 2. Provider naming
// ============================================================================

func TestProviderName(t *testing.T) {
	if got := ProviderName(NewMockProvider()); got != "mock" {
		t.Errorf("ProviderName() = %q, want mock", got)
	}

	var anon Provider = anonymousProvider{}
	if got := ProviderName(anon); got != "unknown" {
		t.Errorf("ProviderName() = %q, want unknown", got)
	}
}

type anonymousProvider struct{}

func (anonymousProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return &ChatResponse{}, nil
}

// ============================================================================
// 3. Request validation
// ============================================================================

func TestValidateRequest(t *testing.T) {
	if err := validateRequest(ChatRequest{}); err == nil {
		t.Error("expected error for empty messages")
	}
	if err := validateRequest(ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
