package services

import (
	"context"

	"github.com/gatormarket/backend/internal/models"
)

// ListAccountsOptions bounds List; Limit is clamped to
// [1, MaxListingPageSize].
type ListAccountsOptions struct {
	Limit int
}

// AccountService records include the stored password; the HTTP layer is
// responsible for stripping it (Account.Sanitized) before responding.
type AccountService interface {
	Create(ctx context.Context, in models.AccountInput) (string, error)
	Get(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	List(ctx context.Context, opts ListAccountsOptions) ([]models.Account, error)
	Update(ctx context.Context, id string, patch models.AccountPatch) (bool, error)
	Deactivate(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
