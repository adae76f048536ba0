package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/handbook"
	"github.com/fwojciec/handbook/fs"
	"github.com/fwojciec/handbook/goldmark"
	"github.com/fwojciec/handbook/goquery"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	sections, toc, err := c.load(deps.Converter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}

	changed, err := deps.Sections.ReplaceHandbook(deps.Ctx, sections, toc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d sections (%d changed) and %d table of contents entries\n",
		len(sections), changed, len(toc))
	return nil
}

func (c *ImportCmd) load(conv handbook.Converter) ([]*handbook.Section, []*handbook.TOCEntry, error) {
	sources := 0
	for _, set := range []bool{c.Markdown != "", c.HTML != "", c.Sections != "" || c.TOC != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, nil, handbook.Errorf(handbook.EINVALID, "--markdown, --html and --sections/--toc are mutually exclusive")
	}

	switch {
	case c.Markdown != "":
		src, err := os.ReadFile(c.Markdown)
		if err != nil {
			return nil, nil, err
		}
		return parseMarkdown(src, c.Markdown)
	case c.HTML != "":
		src, err := os.ReadFile(c.HTML)
		if err != nil {
			return nil, nil, err
		}
		content, err := goquery.SelectContent(string(src), c.Selector)
		if err != nil {
			return nil, nil, err
		}
		md, err := conv.Convert(content)
		if err != nil {
			return nil, nil, err
		}
		return parseMarkdown([]byte(md), c.HTML)
	}

	if c.Sections == "" || c.TOC == "" {
		return nil, nil, handbook.Errorf(handbook.EINVALID, "either --markdown, --html or both --sections and --toc are required")
	}
	sections, err := fs.LoadSections(c.Sections)
	if err != nil {
		return nil, nil, err
	}
	toc, err := fs.LoadTOC(c.TOC)
	if err != nil {
		return nil, nil, err
	}
	return sections, toc, nil
}

func parseMarkdown(src []byte, name string) ([]*handbook.Section, []*handbook.TOCEntry, error) {
	sections, toc := goldmark.Parse(src)
	if len(sections) == 0 {
		return nil, nil, handbook.Errorf(handbook.EINVALID, "no numbered sections found in %s", name)
	}
	return sections, toc, nil
}
