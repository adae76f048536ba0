package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/handbook"
)

var _ handbook.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging. The access code and question
// text are not logged.
type LoggingAsker struct {
	next   handbook.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next handbook.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the outcome.
func (a *LoggingAsker) Ask(ctx context.Context, q *handbook.Question) (answer *handbook.Answer, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"question_bytes", len(q.Text),
			"duration", time.Since(begin),
		}
		if answer != nil {
			attrs = append(attrs, "sections", answer.Sections, "used", answer.Used, "limit", answer.Limit)
		}
		if err != nil {
			attrs = append(attrs, "code", handbook.ErrorCode(err), "err", err)
		}
		a.logger.Info("ask", attrs...)
	}(time.Now())
	return a.next.Ask(ctx, q)
}
