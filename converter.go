package handbook

// Converter converts an HTML handbook to Markdown so it can be split into
// sections by heading.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// Returns EINVALID if the input is empty.
	Convert(html string) (string, error)
}
