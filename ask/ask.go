// Package ask provides the question-answering pipeline: rank candidate
// sections, expand them along cross-references, assemble the context and
// ask the answering oracle.
package ask

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/handbook"
)

// NoContextAnswer is returned instead of calling the answering oracle when
// SkipEmpty is set and no section was found.
const NoContextAnswer = "I could not find any section of the handbook that answers this question."

// Ensure Service implements handbook.Asker at compile time.
var _ handbook.Asker = (*Service)(nil)

// Service answers questions about one loaded handbook. All per-question state
// is local to Ask, so a Service may be shared by concurrent requests.
type Service struct {
	Sections handbook.SectionLookup
	TOC      string
	Ranker   handbook.Ranker
	Answerer handbook.Answerer

	// AccessCodes, if set, gates every question on a valid, unexhausted
	// access code and charges it for every answered question.
	AccessCodes handbook.AccessCodeService

	// TokenCounter and MaxContextTokens bound the prompt size. Sections are
	// dropped from the end of the discovery order until the prompt fits.
	// A zero MaxContextTokens disables the bound.
	TokenCounter     handbook.TokenCounter
	MaxContextTokens int

	// SkipEmpty answers with NoContextAnswer, without calling the Answerer,
	// when no section was found.
	SkipEmpty bool
}

// Ask answers a question about the handbook.
//
// With AccessCodes set, one question is reserved against the code before
// the oracles are called and refunded if no answer is produced.
func (s *Service) Ask(ctx context.Context, q *handbook.Question) (_ *handbook.Answer, err error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var code *handbook.AccessCode
	if s.AccessCodes != nil {
		if code, err = s.reserve(ctx, q.AccessCode); err != nil {
			return nil, err
		}
		defer func() {
			if err == nil {
				return
			}
			if rerr := s.AccessCodes.ReleaseUsage(context.WithoutCancel(ctx), q.AccessCode); rerr != nil {
				err = errors.Join(err, fmt.Errorf("release usage: %w", rerr))
			}
		}()
	}

	labels, err := s.Ranker.RankSections(ctx, s.TOC, q.Text)
	if err != nil {
		return nil, err
	}

	visited := handbook.Expand(s.Sections, labels)

	prompt, keys, err := s.assemble(ctx, q.Text, visited.Keys())
	if err != nil {
		return nil, err
	}

	answer := &handbook.Answer{Prompt: prompt, Sections: keys}
	if len(keys) == 0 && s.SkipEmpty {
		answer.Text = NoContextAnswer
	} else {
		text, err := s.Answerer.Answer(ctx, prompt)
		if err != nil {
			return nil, err
		}
		answer.Text = text
	}

	if code != nil {
		answer.Used = code.Count
		answer.Limit = code.Limit
	}
	return answer, nil
}

// reserve charges one question to the access code, mapping store errors to
// EFORBIDDEN for the caller.
func (s *Service) reserve(ctx context.Context, code string) (*handbook.AccessCode, error) {
	if code == "" {
		return nil, handbook.Errorf(handbook.EFORBIDDEN, "access code required")
	}

	ac, err := s.AccessCodes.ReserveUsage(ctx, code)
	if handbook.ErrorCode(err) == handbook.ENOTFOUND {
		return nil, handbook.Errorf(handbook.EFORBIDDEN, "invalid access code")
	} else if err != nil {
		return nil, err
	}
	return ac, nil
}

// assemble renders the prompt, dropping trailing sections while it exceeds
// the token budget. It returns the prompt and the keys it contains.
func (s *Service) assemble(ctx context.Context, question string, visited []string) (string, []string, error) {
	keys := handbook.ContextKeys(s.Sections, visited)

	for {
		prompt := handbook.AssemblePrompt(question, s.Sections, keys)
		if s.TokenCounter == nil || s.MaxContextTokens <= 0 || len(keys) == 0 {
			return prompt, keys, nil
		}

		n, err := s.TokenCounter.CountTokens(ctx, prompt)
		if err != nil {
			return "", nil, fmt.Errorf("count tokens: %w", err)
		}
		if n <= s.MaxContextTokens {
			return prompt, keys, nil
		}
		keys = keys[:len(keys)-1]
	}
}
