// Package slog provides log/slog decorators for handbook services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/handbook"
)

// Ensure decorators implement their interfaces.
var (
	_ handbook.Ranker   = (*LoggingRanker)(nil)
	_ handbook.Answerer = (*LoggingAnswerer)(nil)
)

// LoggingRanker wraps a Ranker with logging.
type LoggingRanker struct {
	next   handbook.Ranker
	logger *slog.Logger
}

// NewLoggingRanker creates a new LoggingRanker.
func NewLoggingRanker(next handbook.Ranker, logger *slog.Logger) *LoggingRanker {
	return &LoggingRanker{next: next, logger: logger}
}

// RankSections delegates to the wrapped ranker and logs the returned labels.
func (r *LoggingRanker) RankSections(ctx context.Context, toc, question string) (labels []string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("rank sections",
			"labels", labels,
			"count", len(labels),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RankSections(ctx, toc, question)
}

// LoggingAnswerer wraps an Answerer with logging.
type LoggingAnswerer struct {
	next   handbook.Answerer
	logger *slog.Logger
}

// NewLoggingAnswerer creates a new LoggingAnswerer.
func NewLoggingAnswerer(next handbook.Answerer, logger *slog.Logger) *LoggingAnswerer {
	return &LoggingAnswerer{next: next, logger: logger}
}

// Answer delegates to the wrapped answerer and logs prompt and answer sizes.
func (a *LoggingAnswerer) Answer(ctx context.Context, prompt string) (answer string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("answer",
			"prompt_bytes", len(prompt),
			"answer_bytes", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Answer(ctx, prompt)
}
