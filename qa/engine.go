// Package qa orchestrates the context-fitting pipeline: given a question
// and optional document text, it selects chat or document mode, reduces
// over-budget context through summarization, and issues the final
// answer-generation call.
package qa

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/askdoc/askdoc/chunk"
	"github.com/askdoc/askdoc/errors"
	"github.com/askdoc/askdoc/llm"
	"github.com/askdoc/askdoc/logging"
	"github.com/askdoc/askdoc/normalize"
	"github.com/askdoc/askdoc/summarize"
	"github.com/askdoc/askdoc/tokenizer"
)

// Answer modes, reported in logs.
const (
	ModeChat     = "chat"
	ModeDocument = "document"
)

// Defaults sized to an 8192-token context window with 1500 tokens reserved
// for the instructions, the question, and the model's answer.
const (
	DefaultContextWindow  = 8192
	DefaultReservedTokens = 1500
	DefaultAnswerTokens   = 1500
	DefaultTemperature    = 0.7
)

// Config tunes the context fitter. Zero values fall back to the package
// defaults; ReservedTokens must be sized to the deployed model's actual
// window.
type Config struct {
	ContextWindow  int     // total model window, prompt + completion
	ReservedTokens int     // held back for instructions, question, and answer
	AnswerTokens   int     // output cap for the final call
	Temperature    float64 // sampling temperature for the final call
}

func (c *Config) applyDefaults() {
	if c.ContextWindow <= 0 {
		c.ContextWindow = DefaultContextWindow
	}
	if c.ReservedTokens <= 0 {
		c.ReservedTokens = DefaultReservedTokens
	}
	if c.AnswerTokens <= 0 {
		c.AnswerTokens = DefaultAnswerTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
}

// MaxContextTokens is the token budget available to document context after
// the reservation.
func (c Config) MaxContextTokens() int {
	return c.ContextWindow - c.ReservedTokens
}

// Engine is the context fitter. It owns no state across requests; every
// call measures, decides, and delegates with request-local values only.
type Engine struct {
	gateway llm.Provider
	counter tokenizer.Counter
	reducer *summarize.Reducer
	cfg     Config
	log     *logging.Logger
}

// New creates an Engine. The reducer may be nil, in which case a default
// reducer over the same gateway is built.
func New(gateway llm.Provider, counter tokenizer.Counter, reducer *summarize.Reducer, cfg Config, log *logging.Logger) *Engine {
	cfg.applyDefaults()
	if log == nil {
		log = logging.New()
	}
	if reducer == nil {
		reducer = summarize.NewReducer(gateway, summarize.Config{}, log)
	}
	return &Engine{
		gateway: gateway,
		counter: counter,
		reducer: reducer,
		cfg:     cfg,
		log:     log.WithComponent("qa"),
	}
}

// Answer answers question from rawContext. Empty rawContext selects chat
// mode; otherwise the context is normalized, measured, reduced when over
// budget, and sent with the grounding prompt. The model's answer text is
// returned verbatim, refusal sentence included when the model emits it.
//
// Gateway failures come back as classified pipeline errors, already
// logged; the calling layer turns them into its error envelope.
func (e *Engine) Answer(ctx context.Context, question, rawContext string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", errors.InvalidInput("question must not be empty")
	}

	log := e.log.WithTraceID(uuid.NewString())
	start := time.Now()

	if strings.TrimSpace(rawContext) == "" {
		answer, err := e.complete(ctx, log, ChatPayload(question))
		if err != nil {
			return "", err
		}
		log.AnswerServed(ModeChat, time.Since(start), 1)
		return answer, nil
	}

	// Extraction normally cleans upstream; re-applying is idempotent and
	// protects against callers that skipped it.
	docContext := normalize.Clean(rawContext)

	gatewayCalls := 0
	budget := e.cfg.MaxContextTokens()
	contextTokens := e.counter.Count(docContext)

	if contextTokens > budget {
		log.ReductionStart(contextTokens, budget, chunk.Count(docContext, e.reducer.ChunkSize()))

		reduced, results, err := e.reducer.ReduceDetailed(ctx, docContext)
		if err != nil {
			return "", errors.Wrap(err, "reducing context")
		}
		gatewayCalls += len(results)

		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
			}
		}
		reducedTokens := e.counter.Count(reduced)
		// Single pass only: a still-over-budget result proceeds anyway,
		// but the gap is logged rather than silent.
		log.ReductionComplete(len(results), failed, reducedTokens, reducedTokens > budget)

		docContext = reduced
	}

	answer, err := e.complete(ctx, log, DocumentPayload(question, docContext))
	if err != nil {
		return "", err
	}
	gatewayCalls++
	log.AnswerServed(ModeDocument, time.Since(start), gatewayCalls)
	return answer, nil
}

// complete issues one final-answer gateway call.
func (e *Engine) complete(ctx context.Context, log *logging.Logger, messages []llm.Message) (string, error) {
	provider := llm.ProviderName(e.gateway)
	log.GatewayCall(provider, len(messages), e.cfg.AnswerTokens)

	resp, err := e.gateway.Chat(ctx, llm.ChatRequest{
		Messages:    messages,
		MaxTokens:   e.cfg.AnswerTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		pipeErr := errors.Wrap(err, "answer generation failed")
		log.GatewayFailure(provider, pipeErr.Category().String(), pipeErr)
		return "", pipeErr
	}
	return resp.Content, nil
}
