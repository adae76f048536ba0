package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/handbook"
)

// Compile-time interface verification.
var (
	_ handbook.SectionService = (*SectionService)(nil)
	_ handbook.TOCService     = (*TOCService)(nil)
)

// SectionService implements handbook.SectionService using SQLite.
// Duplicate keys are stored as given; lookups return the earliest one.
type SectionService struct {
	db *DB
}

// NewSectionService creates a new SectionService.
func NewSectionService(db *DB) *SectionService {
	return &SectionService{db: db}
}

// ReplaceSections atomically replaces all stored sections and returns the
// number of sections that are new or whose content changed.
func (s *SectionService) ReplaceSections(ctx context.Context, sections []*handbook.Section) (int, error) {
	return s.replace(ctx, sections, nil)
}

// ReplaceHandbook replaces sections and table of contents in one
// transaction.
func (s *SectionService) ReplaceHandbook(ctx context.Context, sections []*handbook.Section, toc []*handbook.TOCEntry) (int, error) {
	if toc == nil {
		toc = []*handbook.TOCEntry{}
	}
	return s.replace(ctx, sections, toc)
}

// replace writes sections and, if toc is non-nil, the table of contents.
func (s *SectionService) replace(ctx context.Context, sections []*handbook.Section, toc []*handbook.TOCEntry) (int, error) {
	for _, sec := range sections {
		if err := sec.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	changed, err := replaceSections(ctx, tx, sections)
	if err != nil {
		return 0, err
	}
	if toc != nil {
		if err := replaceTOC(ctx, tx, toc); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return changed, nil
}

func replaceSections(ctx context.Context, tx *sql.Tx, sections []*handbook.Section) (int, error) {
	previous, err := existingHashes(ctx, tx)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sections"); err != nil {
		return 0, err
	}

	changed := 0
	for i, sec := range sections {
		sec.Position = i
		sec.ContentHash = hashContent(sec.Title, sec.Text)
		if h, ok := previous[sec.Key]; !ok || h != sec.ContentHash {
			changed++
		}
		previous[sec.Key] = sec.ContentHash

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sections (key, title, text, content_hash, position)
			VALUES (?, ?, ?, ?, ?)
		`, sec.Key, sec.Title, sec.Text, sec.ContentHash, sec.Position); err != nil {
			return 0, fmt.Errorf("failed to insert section %q: %w", sec.Key, err)
		}
	}
	return changed, nil
}

func existingHashes(ctx context.Context, tx *sql.Tx) (map[string]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT key, content_hash FROM sections ORDER BY position DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Descending order so the earliest duplicate overwrites later ones.
	hashes := make(map[string]string)
	for rows.Next() {
		var key, hash string
		if err := rows.Scan(&key, &hash); err != nil {
			return nil, err
		}
		hashes[key] = hash
	}
	return hashes, rows.Err()
}

// FindSections retrieves all sections in handbook order.
func (s *SectionService) FindSections(ctx context.Context) ([]*handbook.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, title, text, content_hash, position
		FROM sections
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*handbook.Section
	for rows.Next() {
		var sec handbook.Section
		if err := rows.Scan(&sec.Key, &sec.Title, &sec.Text, &sec.ContentHash, &sec.Position); err != nil {
			return nil, err
		}
		sections = append(sections, &sec)
	}
	return sections, rows.Err()
}

// FindSectionByKey retrieves the first section with the given key.
func (s *SectionService) FindSectionByKey(ctx context.Context, key string) (*handbook.Section, error) {
	var sec handbook.Section
	err := s.db.QueryRowContext(ctx, `
		SELECT key, title, text, content_hash, position
		FROM sections
		WHERE key = ?
		ORDER BY position
		LIMIT 1
	`, key).Scan(&sec.Key, &sec.Title, &sec.Text, &sec.ContentHash, &sec.Position)

	if err == sql.ErrNoRows {
		return nil, handbook.Errorf(handbook.ENOTFOUND, "section %q not found", key)
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// TOCService implements handbook.TOCService using SQLite.
type TOCService struct {
	db *DB
}

// NewTOCService creates a new TOCService.
func NewTOCService(db *DB) *TOCService {
	return &TOCService{db: db}
}

// ReplaceTOC atomically replaces the stored table of contents.
func (s *TOCService) ReplaceTOC(ctx context.Context, entries []*handbook.TOCEntry) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := replaceTOC(ctx, tx, entries); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceTOC(ctx context.Context, tx *sql.Tx, entries []*handbook.TOCEntry) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM toc_entries"); err != nil {
		return err
	}
	for i, e := range entries {
		if e == nil || e.Section == "" {
			return handbook.Errorf(handbook.EINVALID, "toc entry %d: section required", i)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO toc_entries (section, title, position)
			VALUES (?, ?, ?)
		`, e.Section, e.Title, i); err != nil {
			return fmt.Errorf("failed to insert toc entry %q: %w", e.Section, err)
		}
	}
	return nil
}

// FindTOC retrieves the table of contents in handbook order.
func (s *TOCService) FindTOC(ctx context.Context) ([]*handbook.TOCEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT section, title FROM toc_entries ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*handbook.TOCEntry
	for rows.Next() {
		var e handbook.TOCEntry
		if err := rows.Scan(&e.Section, &e.Title); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
