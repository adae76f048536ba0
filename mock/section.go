package mock

import (
	"context"

	"github.com/fwojciec/handbook"
)

var (
	_ handbook.SectionService = (*SectionService)(nil)
	_ handbook.TOCService     = (*TOCService)(nil)
)

// SectionService is a mock implementation of handbook.SectionService.
type SectionService struct {
	ReplaceSectionsFn  func(ctx context.Context, sections []*handbook.Section) (int, error)
	ReplaceHandbookFn  func(ctx context.Context, sections []*handbook.Section, toc []*handbook.TOCEntry) (int, error)
	FindSectionsFn     func(ctx context.Context) ([]*handbook.Section, error)
	FindSectionByKeyFn func(ctx context.Context, key string) (*handbook.Section, error)
}

func (s *SectionService) ReplaceSections(ctx context.Context, sections []*handbook.Section) (int, error) {
	return s.ReplaceSectionsFn(ctx, sections)
}

func (s *SectionService) ReplaceHandbook(ctx context.Context, sections []*handbook.Section, toc []*handbook.TOCEntry) (int, error) {
	return s.ReplaceHandbookFn(ctx, sections, toc)
}

func (s *SectionService) FindSections(ctx context.Context) ([]*handbook.Section, error) {
	return s.FindSectionsFn(ctx)
}

func (s *SectionService) FindSectionByKey(ctx context.Context, key string) (*handbook.Section, error) {
	return s.FindSectionByKeyFn(ctx, key)
}

// TOCService is a mock implementation of handbook.TOCService.
type TOCService struct {
	ReplaceTOCFn func(ctx context.Context, entries []*handbook.TOCEntry) error
	FindTOCFn    func(ctx context.Context) ([]*handbook.TOCEntry, error)
}

func (s *TOCService) ReplaceTOC(ctx context.Context, entries []*handbook.TOCEntry) error {
	return s.ReplaceTOCFn(ctx, entries)
}

func (s *TOCService) FindTOC(ctx context.Context) ([]*handbook.TOCEntry, error) {
	return s.FindTOCFn(ctx)
}
