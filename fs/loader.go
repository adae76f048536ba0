// Package fs loads handbook data files from the local filesystem.
package fs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/handbook"
)

// LoadSections reads a JSON array of {"section", "title", "text"} records.
func LoadSections(path string) ([]*handbook.Section, error) {
	var sections []*handbook.Section
	if err := readJSON(path, &sections); err != nil {
		return nil, err
	}
	for i, s := range sections {
		if s == nil {
			return nil, handbook.Errorf(handbook.EINVALID, "%s: record %d is null", path, i)
		}
		if err := s.Validate(); err != nil {
			return nil, handbook.Errorf(handbook.EINVALID, "%s: record %d: %s", path, i, handbook.ErrorMessage(err))
		}
		s.Position = i
	}
	return sections, nil
}

// LoadTOC reads a JSON array of {"section", "title"} records.
func LoadTOC(path string) ([]*handbook.TOCEntry, error) {
	var entries []*handbook.TOCEntry
	if err := readJSON(path, &entries); err != nil {
		return nil, err
	}
	for i, e := range entries {
		if e == nil || e.Section == "" {
			return nil, handbook.Errorf(handbook.EINVALID, "%s: record %d: section required", path, i)
		}
	}
	return entries, nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return DecodeJSON(f, v, path)
}

// DecodeJSON decodes a JSON document from r into v. Unknown fields are
// allowed; name is used in error messages.
func DecodeJSON(r io.Reader, v any, name string) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return handbook.Errorf(handbook.EINVALID, "%s: %s", name, fmt.Sprint(err))
	}
	return nil
}
