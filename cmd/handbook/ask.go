package main

import (
	"fmt"

	"github.com/fwojciec/handbook"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, &handbook.Question{
		Text:       c.Question,
		AccessCode: c.Code,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)

	if answer.Limit > 0 {
		remaining := max(answer.Limit-answer.Used, 0)
		fmt.Fprintf(deps.Stdout, "\nYou have used %d of %d queries (%d remaining).\n", answer.Used, answer.Limit, remaining)
	}

	if c.Debug {
		fmt.Fprintln(deps.Stdout, "\n--- Prompt ---")
		fmt.Fprint(deps.Stdout, answer.Prompt)
	}

	return nil
}
