package handbook

import (
	"regexp"
	"strings"
)

// AppendixPrefix is the literal prefix of every canonical appendix key.
const AppendixPrefix = "APPENDIX "

// referenceRe matches "section 3.4" or "Appendix 2" anywhere in body text.
var referenceRe = regexp.MustCompile(`(?i)\b(section|appendix)\s+([\d.]+)`)

// Normalize maps a human-written section label to its canonical key.
//
// Labels are lowercased, the words "appendix" and "section" are removed, and
// the leading run of digits and dots is kept. Appendix labels get the
// AppendixPrefix. A label without digits normalizes to an empty (or bare
// "APPENDIX") key, which simply fails lookup downstream.
func Normalize(raw string) string {
	s := strings.ToLower(raw)

	isAppendix := strings.Contains(s, "appendix")
	if isAppendix {
		s = strings.ReplaceAll(s, "appendix", "")
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "section", ""))

	end := 0
	for end < len(s) && (isDigit(s[end]) || s[end] == '.') {
		end++
	}

	key := s[:end]
	if isAppendix {
		key = AppendixPrefix + key
	}
	return strings.TrimSpace(key)
}

// ExtractReferences returns the section and appendix references embedded in
// text, in order of occurrence. Duplicates are preserved.
func ExtractReferences(text string) []string {
	matches := referenceRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.EqualFold(m[1], "section") {
			refs = append(refs, m[2])
		} else {
			refs = append(refs, AppendixPrefix+m[2])
		}
	}
	return refs
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
