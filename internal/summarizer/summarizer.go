package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bookhub/internal/config"
	"bookhub/internal/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// PromptPrefix is prepended to the book text on every request.
const PromptPrefix = "Please summarize the following book content:\n\n"

const breakerName = "ollama-summarizer"

// Summarizer turns book text into a summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type Options struct {
	BaseURL         string
	Model           string
	Timeout         time.Duration
	RateLimit       float64 // requests per second, 0 = unlimited
	RateBurst       int
	BreakerFailures int // consecutive failures before opening, 0 = no breaker
	Logger          *slog.Logger
}

func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		BaseURL:         cfg.OllamaBaseURL,
		Model:           cfg.SummarizerModel,
		Timeout:         cfg.SummarizerTimeout,
		RateLimit:       cfg.SummarizerRateLimit,
		RateBurst:       cfg.SummarizerRateBurst,
		BreakerFailures: cfg.SummarizerBreakerFailures,
		Logger:          logger,
	}
}

// Gateway is the Ollama-backed Summarizer.
type Gateway struct {
	client      *OllamaClient
	model       string
	rateLimiter *rate.Limiter
	cb          *gobreaker.CircuitBreaker[string]
	logger      *slog.Logger
}

func NewGateway(opts Options) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.RateBurst
	if burst < 1 {
		burst = 1
	}

	g := &Gateway{
		client:      NewOllamaClient(opts.BaseURL, opts.Timeout),
		model:       opts.Model,
		rateLimiter: rate.NewLimiter(limit, burst),
		logger:      logger,
	}

	if opts.BreakerFailures > 0 {
		threshold := uint32(opts.BreakerFailures)
		metrics.SummarizerBreakerState.WithLabelValues(breakerName).Set(0)

		g.cb = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("summarizer_breaker_state_change",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
				metrics.SummarizerBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			},
		})
	}

	return g
}

// Summarize asks the model for a summary of text and returns its reply
// verbatim. No retry and no output validation.
func (g *Gateway) Summarize(ctx context.Context, text string) (string, error) {
	if err := g.rateLimiter.Wait(ctx); err != nil {
		metrics.RecordSummarizerCall(metrics.OutcomeRejected, 0)
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	start := time.Now()
	call := func() (string, error) {
		return g.client.Generate(ctx, g.model, PromptPrefix+text)
	}

	var (
		summary string
		err     error
	)
	if g.cb != nil {
		summary, err = g.cb.Execute(call)
	} else {
		summary, err = call()
	}
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordSummarizerCall(metrics.OutcomeRejected, elapsed)
			g.logger.Warn("summarizer_rejected", "error", err)
			return "", fmt.Errorf("summarizer unavailable: %w", err)
		}
		metrics.RecordSummarizerCall(metrics.OutcomeError, elapsed)
		g.logger.Error("summarizer_failed", "model", g.model, "duration_ms", elapsed.Milliseconds(), "error", err)
		return "", err
	}

	metrics.RecordSummarizerCall(metrics.OutcomeSuccess, elapsed)
	g.logger.Info("summary_generated", "model", g.model, "duration_ms", elapsed.Milliseconds(), "chars", len(summary))
	return summary, nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
