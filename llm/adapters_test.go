package llm

import "testing"

// ============================================================================
// 1. Provider inference from model names
// ============================================================================

func TestInferProviderFromModel(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"claude-sonnet-4-20250514", "anthropic"},
		{"Claude-Opus-4", "anthropic"},
		{"gpt-4", "openai"},
		{"gpt-4o-mini", "openai"},
		{"o1-preview", "openai"},
		{"o3-mini", "openai"},
		{"chatgpt-4o-latest", "openai"},
		{"gemini-2.0-flash", "google"},
		{"llama-3-70b", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := InferProviderFromModel(tt.model); got != tt.want {
				t.Errorf("InferProviderFromModel(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

// ============================================================================
// 2. Gateway configuration validation
// ============================================================================

func TestGatewayConfigValidate(t *testing.T) {
	valid := GatewayConfig{
		Provider:  "openai",
		Model:     "gpt-4",
		APIKey:    "sk-test",
		MaxTokens: 1500,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*GatewayConfig)
	}{
		{"missing provider", func(c *GatewayConfig) { c.Provider = "" }},
		{"missing model", func(c *GatewayConfig) { c.Model = "" }},
		{"missing api key", func(c *GatewayConfig) { c.APIKey = "" }},
		{"missing max tokens", func(c *GatewayConfig) { c.MaxTokens = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestNewProviderInference(t *testing.T) {
	// Provider left empty but inferable from the model name.
	p, err := NewProvider(GatewayConfig{
		Model:     "gpt-4",
		APIKey:    "sk-test",
		MaxTokens: 1500,
	})
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if got := ProviderName(p); got != "openai" {
		t.Errorf("ProviderName() = %q, want openai", got)
	}
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(GatewayConfig{
		Provider:  "mystery",
		Model:     "x",
		APIKey:    "k",
		MaxTokens: 100,
	})
	if err == nil {
		t.Error("expected error for unknown provider")
	}

	_, err = NewProvider(GatewayConfig{
		Model:     "llama-3-70b",
		APIKey:    "k",
		MaxTokens: 100,
	})
	if err == nil {
		t.Error("expected error for uninferable model")
	}
}
