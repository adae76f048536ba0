// Package goquery selects handbook content from HTML pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/handbook"
)

// DefaultSelectors are tried in order when no selector is given.
var DefaultSelectors = []string{"main", "article", "body"}

// noiseSelector matches elements that never carry handbook text.
const noiseSelector = "script, style, noscript, nav, header, footer, aside, form"

// SelectContent returns the HTML of the first element matching selector,
// with navigation and other page chrome removed. An empty selector tries
// DefaultSelectors.
func SelectContent(html, selector string) (string, error) {
	candidates := DefaultSelectors
	if selector != "" {
		candidates = []string{selector}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", handbook.Errorf(handbook.EINVALID, "failed to parse HTML: %v", err)
	}

	var sel *goquery.Selection
	for _, candidate := range candidates {
		selector = candidate
		if sel = doc.Find(candidate).First(); sel.Length() > 0 {
			break
		}
	}
	if sel.Length() == 0 {
		return "", handbook.Errorf(handbook.ENOTFOUND, "no element matches selector %q", selector)
	}

	sel.Find(noiseSelector).Remove()

	content, err := sel.Html()
	if err != nil {
		return "", handbook.Errorf(handbook.EINVALID, "failed to render HTML: %v", err)
	}
	if strings.TrimSpace(content) == "" {
		return "", handbook.Errorf(handbook.EINVALID, "selector %q matched an empty element", selector)
	}
	return content, nil
}
