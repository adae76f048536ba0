// Package openai implements the handbook oracles on the OpenAI chat
// completions API.
package openai

import (
	"context"
	"strings"

	"github.com/fwojciec/handbook"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

const temperature = float32(0.2)

var (
	_ handbook.Ranker   = (*Ranker)(nil)
	_ handbook.Answerer = (*Answerer)(nil)
)

// Ranker implements handbook.Ranker using OpenAI chat completions.
type Ranker struct {
	client *openai.Client
	model  string
	parser handbook.LabelParser
}

// NewRanker creates a new Ranker. Output is decoded with parser.
func NewRanker(client *openai.Client, model string, parser handbook.LabelParser) *Ranker {
	return &Ranker{client: client, model: model, parser: parser}
}

// RankSections asks the model which sections of the table of contents are
// most likely to answer the question.
func (r *Ranker) RankSections(ctx context.Context, toc, question string) ([]string, error) {
	if question == "" {
		return nil, handbook.Errorf(handbook.EINVALID, "question required")
	}

	req := BuildRequest(r.model, handbook.RankSystemPrompt, handbook.RankPrompt(toc, question))
	return handbook.RankWithRetry(ctx, handbook.RankAttempts, func(ctx context.Context) (string, error) {
		return complete(ctx, r.client, req)
	}, r.parser)
}

// Answerer implements handbook.Answerer using OpenAI chat completions.
type Answerer struct {
	client *openai.Client
	model  string
}

// NewAnswerer creates a new Answerer.
func NewAnswerer(client *openai.Client, model string) *Answerer {
	return &Answerer{client: client, model: model}
}

// Answer sends the assembled prompt to the model and returns the trimmed answer.
func (a *Answerer) Answer(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", handbook.Errorf(handbook.EINVALID, "prompt required")
	}

	text, err := complete(ctx, a.client, BuildRequest(a.model, handbook.AnswerSystemPrompt, prompt))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// BuildRequest returns a chat completion request with a system and user message.
func BuildRequest(model, system, prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	}
}

func complete(ctx context.Context, client *openai.Client, req openai.ChatCompletionRequest) (string, error) {
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", handbook.Errorf(handbook.EINTERNAL, "openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
