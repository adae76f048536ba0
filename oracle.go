package handbook

import (
	"context"
	"fmt"
)

// RankAttempts is how many times a ranking oracle is asked before its
// output is treated as "no relevant sections".
const RankAttempts = 3

// Oracle prompts shared by every provider.
const (
	RankSystemPrompt   = "You're an assistant helping students find information in a college handbook."
	AnswerSystemPrompt = "You're an assistant helping to answer questions from new students at the college. Answer based only on the context provided. If the answer is not in the context, say so."
)

// Ranker is the relevance oracle. Given the formatted table of contents and a
// question it returns raw labels of the sections most likely to hold the
// answer. An empty result means no relevant section was found; it is not an
// error.
type Ranker interface {
	RankSections(ctx context.Context, toc, question string) ([]string, error)
}

// Answerer is the answering oracle. It turns an assembled prompt into a
// free-text answer.
type Answerer interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// LabelParser strictly decodes ranking oracle output into raw labels.
// It reports false for output that fails validation.
type LabelParser interface {
	Parse(output string) ([]string, bool)
}

// RankPrompt builds the user prompt for the ranking oracle.
func RankPrompt(toc, question string) string {
	return "Here is a table of contents from a student handbook:\n" + toc +
		fmt.Sprintf("\nPlease give me all the sections that are the most likely to contain the answer to this question: %q\n", question) +
		`Return only a JSON array of the section numbers as strings (e.g. ["1.2.", "2.3.", "APPENDIX 1"]).`
}

// GenerateFunc asks a text-generation backend for one completion.
type GenerateFunc func(ctx context.Context) (string, error)

// RankWithRetry asks generate up to attempts times and returns the first
// output that parser accepts. If no output is accepted it returns an empty
// result and no error. Backend errors are returned unchanged.
func RankWithRetry(ctx context.Context, attempts int, generate GenerateFunc, parser LabelParser) ([]string, error) {
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		output, err := generate(ctx)
		if err != nil {
			return nil, err
		}
		if labels, ok := parser.Parse(output); ok {
			return labels, nil
		}
	}
	return nil, nil
}
