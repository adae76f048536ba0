// Package gemini implements the handbook oracles on Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/handbook"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// temperature keeps both oracles close to deterministic.
const temperature = float32(0.2)

// Ensure Ranker and Answerer implement the oracle interfaces at compile time.
var (
	_ handbook.Ranker   = (*Ranker)(nil)
	_ handbook.Answerer = (*Answerer)(nil)
)

// Ranker implements handbook.Ranker using Google Gemini.
type Ranker struct {
	client *genai.Client
	model  string
	parser handbook.LabelParser
}

// NewRanker creates a new Ranker. Output is decoded with parser.
func NewRanker(client *genai.Client, model string, parser handbook.LabelParser) *Ranker {
	return &Ranker{client: client, model: model, parser: parser}
}

// RankSections asks Gemini which sections of the table of contents are most
// likely to answer the question.
func (r *Ranker) RankSections(ctx context.Context, toc, question string) ([]string, error) {
	if question == "" {
		return nil, handbook.Errorf(handbook.EINVALID, "question required")
	}

	prompt := handbook.RankPrompt(toc, question)
	config := BuildConfig(handbook.RankSystemPrompt)

	return handbook.RankWithRetry(ctx, handbook.RankAttempts, func(ctx context.Context) (string, error) {
		return generate(ctx, r.client, r.model, prompt, config)
	}, r.parser)
}

// Answerer implements handbook.Answerer using Google Gemini.
type Answerer struct {
	client *genai.Client
	model  string
}

// NewAnswerer creates a new Answerer.
func NewAnswerer(client *genai.Client, model string) *Answerer {
	return &Answerer{client: client, model: model}
}

// Answer sends the assembled prompt to Gemini and returns the trimmed answer.
func (a *Answerer) Answer(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", handbook.Errorf(handbook.EINVALID, "prompt required")
	}

	text, err := generate(ctx, a.client, a.model, prompt, BuildConfig(handbook.AnswerSystemPrompt))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(system string) *genai.GenerateContentConfig {
	temp := temperature
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
		Temperature: &temp,
	}
}

func generate(ctx context.Context, client *genai.Client, model, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", handbook.Errorf(handbook.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}
