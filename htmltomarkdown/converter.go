// Package htmltomarkdown converts HTML handbooks to Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/handbook"
)

// Ensure Converter implements handbook.Converter at compile time.
var _ handbook.Converter = (*Converter)(nil)

// PageChrome lists the elements dropped before conversion. They carry site
// navigation, not handbook text.
var PageChrome = []string{"nav", "footer", "aside", "form", "button", "img"}

// numberedHeadingRe finds the section number at the start of an ATX heading,
// escaped or not: "## 1\. Leave", "### Section 2\.1\. Rooms".
var numberedHeadingRe = regexp.MustCompile(`(?im)^(#{1,6}[ \t]+(?:(?:section|appendix)[ \t]+)?)(\d[\d.\\]*)`)

// Converter turns handbook HTML into Markdown whose numbered headings read
// exactly as written.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter that drops PageChrome elements.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	for _, tag := range PageChrome {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
//
// The converter escapes "1." so it is not read as a list item. Inside a
// heading that cannot happen, so heading numbers are unescaped again.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", handbook.Errorf(handbook.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", handbook.Errorf(handbook.EINVALID, "convert HTML: %s", err)
	}

	return unescapeHeadingNumbers(result), nil
}

func unescapeHeadingNumbers(md string) string {
	return numberedHeadingRe.ReplaceAllStringFunc(md, func(m string) string {
		sub := numberedHeadingRe.FindStringSubmatch(m)
		return sub[1] + strings.ReplaceAll(sub[2], `\`, "")
	})
}
