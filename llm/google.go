package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/askdoc/askdoc/errors"
)

// GoogleProvider implements the Provider interface using the official Google Gemini SDK.
type GoogleProvider struct {
	client    *genai.Client
	modelName string
	maxTokens int
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// NewGoogleProvider creates a new Google Gemini provider using the official SDK.
func NewGoogleProvider(cfg GoogleConfig) (*GoogleProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api_key is required for google")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required for google")
	}
	if cfg.MaxTokens == 0 {
		return nil, fmt.Errorf("max_tokens is required for google")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create google client: %w", err)
	}

	return &GoogleProvider{
		client:    client,
		modelName: cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Close closes the underlying client.
func (p *GoogleProvider) Close() error {
	return p.client.Close()
}

// Name implements Namer.
func (p *GoogleProvider) Name() string {
	return "google"
}

// Chat implements the Provider interface. A fresh model handle is built per
// call so concurrent requests never share mutable generation settings.
func (p *GoogleProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, errors.InvalidInput(err.Error(), errors.WithProvider(p.Name()))
	}

	model := p.client.GenerativeModel(p.modelName)

	maxTokens := int32(p.maxTokens)
	if req.MaxTokens > 0 {
		maxTokens = int32(req.MaxTokens)
	}
	model.SetMaxOutputTokens(maxTokens)
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}

	// System messages become the system instruction; user and assistant
	// messages become chat history with the last user turn as the prompt.
	cs := model.StartChat()
	var prompt string
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(m.Content)},
			}
		case RoleUser:
			if prompt != "" {
				cs.History = append(cs.History, &genai.Content{
					Role:  "user",
					Parts: []genai.Part{genai.Text(prompt)},
				})
			}
			prompt = m.Content
		case RoleAssistant:
			cs.History = append(cs.History, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		}
	}
	if prompt == "" {
		return nil, errors.InvalidInput("google request has no user message",
			errors.WithProvider(p.Name()))
	}

	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return nil, Classify(err, p.Name(), p.modelName)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.MalformedResponse("google returned no candidates",
			errors.WithProvider(p.Name()), errors.WithModel(p.modelName))
	}

	result := &ChatResponse{
		Model: p.modelName,
	}
	candidate := resp.Candidates[0]
	result.StopReason = candidate.FinishReason.String()
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			result.Content += string(text)
		}
	}
	if resp.UsageMetadata != nil {
		result.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	if result.Content == "" {
		return nil, errors.MalformedResponse("google returned no text content",
			errors.WithProvider(p.Name()), errors.WithModel(p.modelName))
	}

	return result, nil
}
