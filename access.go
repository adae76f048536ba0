package handbook

import (
	"context"
	"time"
)

// AccessCode grants a caller a limited number of questions.
type AccessCode struct {
	Code      string    `json:"code"`
	Count     int       `json:"count"`
	Limit     int       `json:"limit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the access code contains invalid fields.
func (c *AccessCode) Validate() error {
	if c.Code == "" {
		return Errorf(EINVALID, "access code required")
	}
	if c.Limit < 0 {
		return Errorf(EINVALID, "access code limit must not be negative")
	}
	if c.Count < 0 {
		return Errorf(EINVALID, "access code count must not be negative")
	}
	return nil
}

// Exhausted reports whether the quota has been used up.
func (c *AccessCode) Exhausted() bool {
	return c.Count >= c.Limit
}

// Remaining returns the number of questions left on the code.
func (c *AccessCode) Remaining() int {
	if c.Exhausted() {
		return 0
	}
	return c.Limit - c.Count
}

// AccessCodeService represents a service for managing access codes.
type AccessCodeService interface {
	// CreateAccessCode creates a new access code.
	// Returns ECONFLICT if the code already exists.
	CreateAccessCode(ctx context.Context, code *AccessCode) error

	// FindAccessCode retrieves an access code.
	// Returns ENOTFOUND if the code does not exist.
	FindAccessCode(ctx context.Context, code string) (*AccessCode, error)

	// FindAccessCodes retrieves all access codes.
	FindAccessCodes(ctx context.Context) ([]*AccessCode, error)

	// ReserveUsage atomically charges one question to the code and returns
	// the updated code. The charge only succeeds while Count < Limit.
	// Returns ENOTFOUND if the code does not exist and EFORBIDDEN if its
	// quota is exhausted.
	ReserveUsage(ctx context.Context, code string) (*AccessCode, error)

	// ReleaseUsage refunds a reservation for a question that was not
	// answered.
	ReleaseUsage(ctx context.Context, code string) error
}
