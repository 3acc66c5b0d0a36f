// Package app provides the application bootstrap and runtime orchestration.
//
// The App type wires together all dependencies and exposes methods to run
// different operational modes:
//
//   - Serve mode: health/metrics server plus the periodic warm-up runner
//   - Warmup mode: a single warm-up batch run, then exit
//   - Seed mode: register comparison inputs from a JSON file
//
// The comparison engine itself is a library surface: embedding callers reach
// it through the Engine, Correlator, and Verifier accessors.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/trendarc/trendarc/internal/compare"
	"github.com/trendarc/trendarc/internal/confidence"
	coreerrors "github.com/trendarc/trendarc/internal/core/errors"
	"github.com/trendarc/trendarc/internal/core/ports"
	"github.com/trendarc/trendarc/internal/disambig"
	"github.com/trendarc/trendarc/internal/events"
	"github.com/trendarc/trendarc/internal/memo"
	"github.com/trendarc/trendarc/internal/peaks"
	"github.com/trendarc/trendarc/internal/platform/config"
	"github.com/trendarc/trendarc/internal/platform/observability"
	"github.com/trendarc/trendarc/internal/score"
	db "github.com/trendarc/trendarc/internal/storage"
	"github.com/trendarc/trendarc/internal/warmup"
)

// App holds the application dependencies and provides methods to run
// different modes.
type App struct {
	cfg      *config.Config
	database *db.DB
	logger   *zerolog.Logger

	memoCache  *memo.Cache
	calculator *score.Calculator
	engine     *compare.Engine
	correlator *peaks.Correlator
	verifier   ports.Verifier
}

// New creates a new App instance with the given dependencies.
func New(cfg *config.Config, database *db.DB, logger *zerolog.Logger) *App {
	memoCache := memo.NewCache(cfg.MemoTTL)
	calculator := score.NewCalculator(score.DefaultWeights(), logger)

	engine := compare.NewEngine(confidence.NewModel(), memoCache, compare.Options{
		CorrectedAgreement: cfg.AgreementCorrected,
		TopDrivers:         cfg.TopDrivers,
	}, logger)

	correlator := peaks.NewCorrelator(buildEventSearcher(cfg, logger), peaks.Options{
		MinProminence: cfg.PeakMinProminence,
		WindowDays:    cfg.EventWindowDays,
		LookupTimeout: cfg.EventLookupTimeout,
		Fanout:        cfg.EventLookupFanout,
		MaxResults:    cfg.EventMaxResults,
	}, logger)

	return &App{
		cfg:        cfg,
		database:   database,
		logger:     logger,
		memoCache:  memoCache,
		calculator: calculator,
		engine:     engine,
		correlator: correlator,
		verifier:   buildVerifier(cfg, database, logger),
	}
}

// Engine returns the comparison metrics engine.
func (a *App) Engine() *compare.Engine {
	return a.engine
}

// Calculator returns the composite score calculator.
func (a *App) Calculator() *score.Calculator {
	return a.calculator
}

// Correlator returns the peak detector and event correlator.
func (a *App) Correlator() *peaks.Correlator {
	return a.correlator
}

// Verifier returns the context-aware disambiguation verifier.
func (a *App) Verifier() ports.Verifier {
	return a.verifier
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	return observability.NewServer(a.database, a.cfg.HealthPort, a.logger).Start(ctx)
}

// RunServe blocks until ctx is canceled. When the warm-up job is enabled it
// runs on its schedule alongside the housekeeping tasks.
func (a *App) RunServe(ctx context.Context) error {
	if a.cfg.WarmupEnabled {
		return a.warmupRunner().Run(ctx)
	}

	a.logger.Info().Msg("warmup disabled, serving health and metrics only")

	<-ctx.Done()

	return ctx.Err()
}

// RunWarmupOnce runs a single warm-up batch. A run skipped because another
// instance holds the lock is reported but not treated as a failure.
func (a *App) RunWarmupOnce(ctx context.Context) error {
	err := a.warmupJob().RunOnce(ctx)
	if coreerrors.Is(err, coreerrors.ErrJobAlreadyRunning) {
		a.logger.Info().Msg("warmup skipped, another instance holds the lock")

		return nil
	}

	return err
}

// RunSeed registers comparison inputs from a JSON file containing an array of
// comparison inputs.
func (a *App) RunSeed(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var inputs []ports.ComparisonInput

	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for i := range inputs {
		if err := a.database.UpsertComparisonInput(ctx, &inputs[i]); err != nil {
			return fmt.Errorf("seed comparison %q: %w", inputs[i].Key.Slug, err)
		}
	}

	a.logger.Info().Int("comparisons", len(inputs)).Msg("seeded comparison inputs")

	return nil
}

func (a *App) warmupJob() *warmup.Job {
	return warmup.NewJob(
		a.database, a.database, a.database, a.calculator, a.engine, a.database,
		warmup.Options{
			BatchSize:   a.cfg.WarmupBatchSize,
			Concurrency: a.cfg.WarmupConcurrency,
			StaleAfter:  a.cfg.WarmupStaleAfter,
			ItemTimeout: a.cfg.WarmupItemTimeout,
		},
		a.logger,
	)
}

func (a *App) warmupRunner() *warmup.Runner {
	return warmup.NewRunner(
		a.warmupJob(), a.database, a.database, a.memoCache,
		warmup.RunnerConfig{
			RunInterval:     a.cfg.WarmupInterval,
			KeepPerKey:      a.cfg.SnapshotKeepPerKey,
			VerificationTTL: a.cfg.VerificationCacheTTL,
		},
		a.logger,
	)
}

func buildEventSearcher(cfg *config.Config, logger *zerolog.Logger) ports.EventSearcher {
	registry := events.NewProviderRegistry(logger)

	if cfg.GDELTEnabled {
		registry.Register(events.NewGDELTProvider(events.GDELTConfig{
			Enabled:        true,
			RequestsPerMin: cfg.GDELTRequestsPerMin,
			Timeout:        cfg.GDELTTimeout,
		}))
	}

	if len(cfg.RSSFeedURLs) > 0 {
		registry.Register(events.NewRSSProvider(cfg.RSSFeedURLs, cfg.RSSTimeout, logger))
	}

	return registry
}

// buildVerifier assembles the verifier stack: the configured backend,
// degrading to rules when the generative backend fails, with results cached
// in Postgres.
func buildVerifier(cfg *config.Config, database *db.DB, logger *zerolog.Logger) ports.Verifier {
	rules := disambig.NewRuleVerifier()

	var backend ports.Verifier = rules

	if cfg.VerifierBackend == config.VerifierBackendOpenAI && cfg.LLMAPIKey != "" {
		generative := disambig.NewOpenAIVerifier(disambig.OpenAIConfig{
			APIKey:       cfg.LLMAPIKey,
			Model:        cfg.LLMModel,
			RateLimitRPS: cfg.RateLimitRPS,
		}, logger)

		backend = disambig.NewFallbackVerifier(generative, rules, logger)
	}

	return disambig.NewCachedVerifier(backend, database, logger)
}
