package mock

import (
	"context"

	"github.com/fwojciec/handbook"
)

var _ handbook.AccessCodeService = (*AccessCodeService)(nil)

// AccessCodeService is a mock implementation of handbook.AccessCodeService.
type AccessCodeService struct {
	CreateAccessCodeFn func(ctx context.Context, code *handbook.AccessCode) error
	FindAccessCodeFn   func(ctx context.Context, code string) (*handbook.AccessCode, error)
	FindAccessCodesFn  func(ctx context.Context) ([]*handbook.AccessCode, error)
	ReserveUsageFn     func(ctx context.Context, code string) (*handbook.AccessCode, error)
	ReleaseUsageFn     func(ctx context.Context, code string) error
}

func (s *AccessCodeService) CreateAccessCode(ctx context.Context, code *handbook.AccessCode) error {
	return s.CreateAccessCodeFn(ctx, code)
}

func (s *AccessCodeService) FindAccessCode(ctx context.Context, code string) (*handbook.AccessCode, error) {
	return s.FindAccessCodeFn(ctx, code)
}

func (s *AccessCodeService) FindAccessCodes(ctx context.Context) ([]*handbook.AccessCode, error) {
	return s.FindAccessCodesFn(ctx)
}

func (s *AccessCodeService) ReserveUsage(ctx context.Context, code string) (*handbook.AccessCode, error) {
	return s.ReserveUsageFn(ctx, code)
}

func (s *AccessCodeService) ReleaseUsage(ctx context.Context, code string) error {
	return s.ReleaseUsageFn(ctx, code)
}
