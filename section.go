package handbook

import "context"

// Section represents one numbered section or appendix of the handbook.
type Section struct {
	Key         string `json:"section"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	ContentHash string `json:"-"`
	Position    int    `json:"-"`
}

// Validate returns an error if the section contains invalid fields.
func (s *Section) Validate() error {
	if s.Key == "" {
		return Errorf(EINVALID, "section key required")
	}
	return nil
}

// SectionLookup resolves canonical section keys to their title and body.
// A missing key is reported with ok == false, never with an error.
type SectionLookup interface {
	Text(key string) (text string, ok bool)
	Title(key string) (title string, ok bool)
}

// SectionService represents a service for managing persisted sections.
type SectionService interface {
	// ReplaceSections atomically replaces all stored sections.
	// Returns the number of sections whose content changed.
	ReplaceSections(ctx context.Context, sections []*Section) (int, error)

	// ReplaceHandbook atomically replaces all stored sections and the table
	// of contents together. Either both are replaced or neither is.
	// Returns the number of sections whose content changed.
	ReplaceHandbook(ctx context.Context, sections []*Section, toc []*TOCEntry) (int, error)

	// FindSections retrieves all sections in handbook order.
	FindSections(ctx context.Context) ([]*Section, error)

	// FindSectionByKey retrieves a section by canonical key.
	// Returns ENOTFOUND if the section does not exist.
	FindSectionByKey(ctx context.Context, key string) (*Section, error)
}

// Ensure SectionTable implements SectionLookup at compile time.
var _ SectionLookup = (SectionTable)(nil)

// SectionTable is an immutable, in-memory handbook loaded once at startup.
// Lookups scan linearly and the first matching key wins.
type SectionTable []*Section

// Text returns the body of the first section with the given key.
func (t SectionTable) Text(key string) (string, bool) {
	if s := t.find(key); s != nil {
		return s.Text, true
	}
	return "", false
}

// Title returns the title of the first section with the given key.
func (t SectionTable) Title(key string) (string, bool) {
	if s := t.find(key); s != nil {
		return s.Title, true
	}
	return "", false
}

func (t SectionTable) find(key string) *Section {
	for _, s := range t {
		if s.Key == key {
			return s
		}
	}
	return nil
}
