package main

import (
	"fmt"

	"github.com/fwojciec/handbook"
)

// Run executes the codes add command.
func (c *CodesAddCmd) Run(deps *Dependencies) error {
	code := &handbook.AccessCode{Code: c.Code, Limit: c.Limit}
	if err := deps.AccessCodes.CreateAccessCode(deps.Ctx, code); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created access code %s (limit %d)\n", code.Code, code.Limit)
	return nil
}

// Run executes the codes list command.
func (c *CodesListCmd) Run(deps *Dependencies) error {
	codes, err := deps.AccessCodes.FindAccessCodes(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}

	if len(codes) == 0 {
		fmt.Fprintln(deps.Stdout, "No access codes found. Use 'handbook codes add' to create one.")
		return nil
	}

	for _, code := range codes {
		fmt.Fprintf(deps.Stdout, "%s  %d/%d\n", code.Code, code.Count, code.Limit)
	}

	return nil
}
