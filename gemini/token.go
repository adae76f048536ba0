package gemini

import (
	"context"

	"github.com/fwojciec/handbook"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ handbook.TokenCounter = (*TokenCounter)(nil)

// TokenCounter sizes answer prompts with the local Gemini tokenizer, so the
// context budget is enforced without an API round trip.
//
// Counts cover the whole answer request: the prompt as a user turn plus the
// System instruction sent alongside it.
type TokenCounter struct {
	// System is counted with every prompt. NewTokenCounter sets it to
	// handbook.AnswerSystemPrompt; clear it to count bare text.
	System string

	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, handbook.Errorf(handbook.EINVALID, "no local tokenizer for model %q: %s", model, err)
	}
	return &TokenCounter{System: handbook.AnswerSystemPrompt, model: model, tok: tok}, nil
}

// Model returns the model whose vocabulary is used for counting.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the tokens Gemini would bill for answering prompt.
func (tc *TokenCounter) CountTokens(ctx context.Context, prompt string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if prompt == "" {
		return 0, nil
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	var config *genai.CountTokensConfig
	if tc.System != "" {
		config = &genai.CountTokensConfig{
			SystemInstruction: genai.NewContentFromText(tc.System, genai.RoleUser),
		}
	}

	result, err := tc.tok.CountTokens(contents, config)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
