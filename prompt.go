package handbook

import "strings"

// PromptPreamble opens every prompt sent to the answering oracle.
const PromptPreamble = "You are answering the following question based on the provided background information from the handbook.\n\n"

// AssemblePrompt renders the question and the given sections into the prompt
// for the answering oracle. Sections whose title or text cannot be resolved
// are left out. With no resolvable sections the context block is empty.
func AssemblePrompt(question string, lookup SectionLookup, keys []string) string {
	var sb strings.Builder
	sb.WriteString(PromptPreamble)
	sb.WriteString("User question: " + question + "\n\n")
	sb.WriteString("Context:\n")
	for _, key := range ContextKeys(lookup, keys) {
		title, _ := lookup.Title(key)
		text, _ := lookup.Text(key)
		sb.WriteString("Section " + key + " - " + title + ": " + text + "\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// ContextKeys returns the keys, in order, whose title and text both resolve
// to non-empty values. These are the sections AssemblePrompt includes.
func ContextKeys(lookup SectionLookup, keys []string) []string {
	var included []string
	for _, key := range keys {
		if title, ok := lookup.Title(key); !ok || title == "" {
			continue
		}
		if text, ok := lookup.Text(key); !ok || text == "" {
			continue
		}
		included = append(included, key)
	}
	return included
}
