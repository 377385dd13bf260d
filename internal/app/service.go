// Package service builds score summary reports for the command layer.
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/highscores/internal/domain/highscores"
	"github.com/okian/highscores/internal/domain/types"
	"github.com/okian/highscores/pkg/logger"
	"github.com/okian/highscores/pkg/metrics"
)

// Operation names used as metric labels and log fields.
const (
	OpScores       = "scores"
	OpLatest       = "latest"
	OpPersonalBest = "personal_best"
	OpTopThree     = "personal_top_three"

	nanosecondsPerMillisecond = 1e6
)

// Recorder receives query and report observations.
type Recorder interface {
	RecordReport(size int)
	RecordQuery(operation string, durationMs float64)
}

// Service runs summaries and keeps counters about them.
type Service struct {
	logger   logger.Logger
	recorder Recorder
	newID    func() string

	summaries      atomic.Int64
	emptySummaries atomic.Int64
	scoresSeen     atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets where metrics are recorded. Defaults to the global
// metrics manager.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithIDGenerator sets the report ID generator. Defaults to random UUIDs.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		recorder: metrics.Global(),
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// Summarize runs every query over scores and returns the report.
// It fails only when ctx is already done.
func (s *Service) Summarize(ctx context.Context, scores []uint32) (types.Report, error) {
	if err := ctx.Err(); err != nil {
		return types.Report{}, fmt.Errorf("summarize: %w", err)
	}

	summary := highscores.New(scores)
	report := types.Report{ID: s.newID()}

	report.Scores = observe(ctx, s, OpScores, summary.Scores)
	report.Latest = observeOptional(ctx, s, OpLatest, summary.Latest)
	report.PersonalBest = observeOptional(ctx, s, OpPersonalBest, summary.PersonalBest)
	report.TopThree = observe(ctx, s, OpTopThree, summary.PersonalTopThree)

	s.recordReport(len(scores))
	s.logger.Info(ctx, "summary report built",
		logger.String("id", report.ID),
		logger.Int("scores", len(scores)),
		logger.Any("top_three", report.TopThree),
	)
	return report, nil
}

// Latest returns the most recent score, ok false when scores is empty.
func (s *Service) Latest(ctx context.Context, scores []uint32) (uint32, bool) {
	v := observeOptional(ctx, s, OpLatest, highscores.New(scores).Latest)
	if v == nil {
		return 0, false
	}
	return *v, true
}

// PersonalBest returns the highest score, ok false when scores is empty.
func (s *Service) PersonalBest(ctx context.Context, scores []uint32) (uint32, bool) {
	v := observeOptional(ctx, s, OpPersonalBest, highscores.New(scores).PersonalBest)
	if v == nil {
		return 0, false
	}
	return *v, true
}

// PersonalTopThree returns up to three highest scores, highest first.
func (s *Service) PersonalTopThree(ctx context.Context, scores []uint32) []uint32 {
	return observe(ctx, s, OpTopThree, highscores.New(scores).PersonalTopThree)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"summaries":      s.summaries.Load(),
		"emptySummaries": s.emptySummaries.Load(),
		"scoresSeen":     s.scoresSeen.Load(),
	}
}

func (s *Service) recordReport(size int) {
	s.summaries.Add(1)
	s.scoresSeen.Add(int64(size))
	if size == 0 {
		s.emptySummaries.Add(1)
	}
	s.recorder.RecordReport(size)
}

// observe times one query and records it.
func observe[T any](ctx context.Context, s *Service, op string, query func() T) T {
	start := time.Now()
	v := query()
	durationMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
	s.recorder.RecordQuery(op, durationMs)
	s.logger.Debug(ctx, "query", logger.String("operation", op), logger.Float64("duration_ms", durationMs))
	return v
}

// observeOptional is observe for queries that may have no value; absence
// comes back as nil.
func observeOptional(ctx context.Context, s *Service, op string, query func() (uint32, bool)) *uint32 {
	return observe(ctx, s, op, func() *uint32 {
		v, ok := query()
		if !ok {
			return nil
		}
		return &v
	})
}
