// Package goldmark imports a markdown handbook into sections using goldmark.
package goldmark

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/fwojciec/handbook"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// headingRe matches numbered headings such as "1.2. Rooms", "Section 3 Fees"
// or "Appendix 1: Map". A bare number needs a dot ("1." or "1.2") so that
// headings like "2024 Admissions" or "3D printing" stay body text, and every
// number must be followed by a separator or the end of the heading.
var headingRe = regexp.MustCompile(`(?i)^(?:(?:section\s+)?(\d+(?:\.\d+)*\.|\d+(?:\.\d+)+)|section\s+(\d[\d.]*)|(appendix\s+\d[\d.]*))(?:[\s:\-–—]+|$)(.*)$`)

// Parse splits a markdown handbook into sections and a table of contents.
//
// Every heading that starts with a section number or an appendix label opens
// a new section; its body is the text up to the next such heading. Other
// headings are kept as body text. Text before the first numbered heading is
// discarded.
func Parse(src []byte) ([]*handbook.Section, []*handbook.TOCEntry) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var (
		sections []*handbook.Section
		toc      []*handbook.TOCEntry
		current  *handbook.Section
		body     bytes.Buffer
	)

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(body.String())
		}
		body.Reset()
	}

	appendBody := func(t string) {
		if t == "" {
			return
		}
		if body.Len() > 0 {
			body.WriteString("\n\n")
		}
		body.WriteString(t)
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			heading := strings.TrimSpace(extractText(h, src))
			if key, title, ok := parseHeading(heading); ok {
				flush()
				current = &handbook.Section{Key: key, Title: title, Position: len(sections)}
				sections = append(sections, current)
				toc = append(toc, &handbook.TOCEntry{Section: key, Title: title})
				continue
			}
			appendBody(heading)
			continue
		}
		appendBody(extractText(n, src))
	}
	flush()

	return sections, toc
}

// parseHeading splits a numbered heading into canonical key and title.
func parseHeading(heading string) (key, title string, ok bool) {
	m := headingRe.FindStringSubmatch(heading)
	if m == nil {
		return "", "", false
	}
	key = handbook.Normalize(m[1] + m[2] + m[3])
	title = strings.TrimSpace(strings.TrimLeft(m[4], "-:–— \t"))
	return key, title, true
}

// extractText gets the text content of a goldmark AST node. Code and HTML
// blocks keep their raw lines; other blocks are joined by newlines.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeText(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func writeText(buf *bytes.Buffer, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return
	case *ast.Text:
		value := node.Segment.Value(src)
		if _, code := node.Parent().(*ast.CodeSpan); !code {
			value = util.UnescapePunctuations(value)
		}
		buf.Write(value)
		if node.HardLineBreak() || node.SoftLineBreak() {
			buf.WriteByte('\n')
		}
		return
	case *ast.String:
		buf.Write(node.Value)
		return
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == ast.TypeBlock && c.PreviousSibling() != nil {
			buf.WriteByte('\n')
		}
		writeText(buf, c, src)
	}
}
