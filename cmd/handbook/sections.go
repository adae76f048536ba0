package main

import (
	"fmt"

	"github.com/fwojciec/handbook"
)

// Run executes the sections command.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	sections, err := deps.Sections.FindSections(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}

	if len(sections) == 0 {
		fmt.Fprintln(deps.Stdout, "No sections found. Use 'handbook import' to load a handbook.")
		return nil
	}

	for _, s := range sections {
		if c.Full {
			fmt.Fprintf(deps.Stdout, "Section %s - %s: %s\n", s.Key, s.Title, s.Text)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", s.Key, s.Title)
	}

	return nil
}

// Run executes the expand command.
func (c *ExpandCmd) Run(deps *Dependencies) error {
	sections, err := deps.Sections.FindSections(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}

	table := handbook.SectionTable(sections)
	visited := handbook.Expand(table, c.Labels)
	if visited.Len() == 0 {
		fmt.Fprintln(deps.Stdout, "No matching sections.")
		return nil
	}

	for _, key := range visited.Keys() {
		title, _ := table.Title(key)
		fmt.Fprintf(deps.Stdout, "%s  %s\n", key, title)
	}

	return nil
}
