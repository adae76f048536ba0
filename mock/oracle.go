package mock

import (
	"context"

	"github.com/fwojciec/handbook"
)

var (
	_ handbook.Ranker   = (*Ranker)(nil)
	_ handbook.Answerer = (*Answerer)(nil)
)

// Ranker is a mock implementation of handbook.Ranker.
type Ranker struct {
	RankSectionsFn func(ctx context.Context, toc, question string) ([]string, error)
}

func (r *Ranker) RankSections(ctx context.Context, toc, question string) ([]string, error) {
	return r.RankSectionsFn(ctx, toc, question)
}

// Answerer is a mock implementation of handbook.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, prompt string) (string, error)
}

func (a *Answerer) Answer(ctx context.Context, prompt string) (string, error) {
	return a.AnswerFn(ctx, prompt)
}
