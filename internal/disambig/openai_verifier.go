package disambig

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/errors"
	"github.com/trendarc/trendarc/internal/core/ports"
	"github.com/trendarc/trendarc/internal/platform/observability"
)

const (
	circuitBreakerThreshold = 5
	circuitBreakerTimeout   = 1 * time.Minute

	rateLimiterBurst   = 5
	verifierTemp       = 0.0
	defaultVerifierRPS = 1
)

const verifierSystemPrompt = `You disambiguate keyword senses in news events. Respond with EXACTLY five lines:
RELEVANCE: <0-100 integer, how well the event's keyword sense matches the comparison context>
INTERPRETATION: <which real-world sense of the keyword the event text uses>
REASONING: <one sentence>
CONFIDENCE: <0-100 integer>
CONTEXT_MATCH: <YES or NO>
No other text.`

// OpenAIVerifier asks a chat model which sense of the keyword an event uses.
// Temperature is pinned to zero so repeated calls behave as a pure function
// for caching.
type OpenAIVerifier struct {
	client      *openai.Client
	model       string
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter

	// Circuit breaker state
	consecutiveFailures int
	circuitOpenUntil    time.Time
	mu                  sync.Mutex
}

// OpenAIConfig configures the generative verifier.
type OpenAIConfig struct {
	APIKey       string
	Model        string
	RateLimitRPS int
}

// NewOpenAIVerifier creates a generative verifier.
func NewOpenAIVerifier(cfg OpenAIConfig, logger *zerolog.Logger) *OpenAIVerifier {
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = defaultVerifierRPS
	}

	return &OpenAIVerifier{
		client:      openai.NewClient(cfg.APIKey),
		model:       model,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
	}
}

func (v *OpenAIVerifier) checkCircuit() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if time.Now().Before(v.circuitOpenUntil) {
		return fmt.Errorf("%w until %v", errors.ErrCircuitBreakerOpen, v.circuitOpenUntil)
	}

	return nil
}

func (v *OpenAIVerifier) recordSuccess() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.consecutiveFailures = 0
}

func (v *OpenAIVerifier) recordFailure() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.consecutiveFailures++
	if v.consecutiveFailures >= circuitBreakerThreshold {
		v.circuitOpenUntil = time.Now().Add(circuitBreakerTimeout)

		if v.logger != nil {
			v.logger.Warn().
				Int("consecutive_failures", v.consecutiveFailures).
				Time("open_until", v.circuitOpenUntil).
				Msg("Circuit breaker opened")
		}
	}
}

// VerifyEventWithContext sends one chat completion and parses the five-line
// response.
func (v *OpenAIVerifier) VerifyEventWithContext(
	ctx context.Context,
	event domain.CandidateEvent,
	keyword string,
	compCtx domain.ComparisonContext,
	targetDate time.Time,
) (domain.ContextualRelevanceResult, error) {
	var result domain.ContextualRelevanceResult

	if err := v.checkCircuit(); err != nil {
		observability.VerifierRequests.WithLabelValues("openai", "circuit_open").Inc()

		return result, err
	}

	if err := v.rateLimiter.Wait(ctx); err != nil {
		return result, fmt.Errorf("rate limiter error: %w", err)
	}

	start := time.Now()

	resp, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       v.model,
		Temperature: verifierTemp,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: verifierSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: verifierUserPrompt(event, keyword, compCtx, targetDate)},
		},
	})

	observability.VerifierRequestDuration.WithLabelValues("openai").Observe(time.Since(start).Seconds())

	if err != nil {
		v.recordFailure()
		observability.VerifierRequests.WithLabelValues("openai", "error").Inc()

		return result, fmt.Errorf("verify event with context: %w", err)
	}

	if len(resp.Choices) == 0 {
		v.recordFailure()
		observability.VerifierRequests.WithLabelValues("openai", "empty").Inc()

		return result, errors.ErrEmptyResponse
	}

	result, err = ParseVerifierResponse(resp.Choices[0].Message.Content)
	if err != nil {
		v.recordFailure()
		observability.VerifierRequests.WithLabelValues("openai", "malformed").Inc()

		return result, err
	}

	v.recordSuccess()
	observability.VerifierRequests.WithLabelValues("openai", "ok").Inc()

	// The model decides sense consistency; the threshold stays enforced
	// locally so a sycophantic YES cannot sneak past a low score.
	if result.RelevanceScore < ContextMatchThreshold {
		result.ContextMatch = false
	}

	return result, nil
}

func verifierUserPrompt(event domain.CandidateEvent, keyword string, compCtx domain.ComparisonContext, targetDate time.Time) string {
	return fmt.Sprintf(
		"Event title: %s\nEvent description: %s\nEvent date: %s\nEvent source: %s\n\nAmbiguous keyword: %s\nComparison: %s vs %s\nContext category: %s\nPeak date: %s",
		event.Title,
		event.Description,
		event.Date.Format(time.DateOnly),
		event.Source,
		keyword,
		compCtx.TermA,
		compCtx.TermB,
		compCtx.Category,
		targetDate.Format(time.DateOnly),
	)
}

var _ ports.Verifier = (*OpenAIVerifier)(nil)
