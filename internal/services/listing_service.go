package services

import (
	"context"

	"github.com/gatormarket/backend/internal/models"
)

// Page-size limits. List calls clamp the caller-supplied limit to
// [1, max]; the defaults are what the HTTP layer applies when the query
// omits a limit.
const (
	DefaultListingPageSize = 50
	MaxListingPageSize     = 200
	DefaultMessagePageSize = 100
	MaxMessagePageSize     = 500
)

// ListListingsOptions filters List. Zero-valued Type/User mean no filter.
type ListListingsOptions struct {
	Type        string
	User        string
	IncludeSold bool
	Limit       int
}

type ListingService interface {
	Create(ctx context.Context, in models.ListingInput) (string, error)
	Get(ctx context.Context, id string) (*models.Listing, error)
	List(ctx context.Context, opts ListListingsOptions) ([]models.Listing, error)
	Update(ctx context.Context, id string, patch models.ListingPatch) (bool, error)
	MarkSold(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// clampLimit keeps a page size inside [1, max]. Zero and negative limits
// collapse to 1.
func clampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}
