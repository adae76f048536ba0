package handbook

import (
	"context"
	"strings"
)

// TOCEntry is one line of the handbook's table of contents.
type TOCEntry struct {
	Section string `json:"section"`
	Title   string `json:"title"`
}

// TOCService represents a service for managing the table of contents.
type TOCService interface {
	// ReplaceTOC atomically replaces the stored table of contents.
	ReplaceTOC(ctx context.Context, entries []*TOCEntry) error

	// FindTOC retrieves the table of contents in handbook order.
	FindTOC(ctx context.Context) ([]*TOCEntry, error)
}

// FormatTOC renders the table of contents as one "section title" line per
// entry, the form handed to the ranking oracle.
func FormatTOC(entries []*TOCEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Section+" "+e.Title)
	}
	return strings.Join(lines, "\n")
}
