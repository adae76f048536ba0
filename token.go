package handbook

import "context"

// TokenCounter counts tokens in text for a specific model.
// Used to keep the assembled context within a budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
