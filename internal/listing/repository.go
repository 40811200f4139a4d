package listing

import (
	"context"

	"github.com/fekuna/ammodeals-service/internal/model"
)

// Repository is the read side of the Catalog Store.
type Repository interface {
	FindAll(ctx context.Context) ([]model.Listing, error)
	FindByID(ctx context.Context, id int64) (*model.Listing, error)
	// Version identifies the catalog contents; equal catalogs share a version.
	Version() string
}
