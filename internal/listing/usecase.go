package listing

import (
	"context"

	"github.com/fekuna/ammodeals-service/internal/listing/dto"
	"github.com/fekuna/ammodeals-service/internal/model"
)

type UseCase interface {
	ListListings(ctx context.Context, state dto.ViewState) (*dto.ListingList, error)
	GetListing(ctx context.Context, id int64) (*model.Listing, error)
	// Calibers returns the caliber dropdown values, the "all" sentinel first.
	Calibers() []string
	CatalogSize(ctx context.Context) (int, error)
	CatalogVersion() string
}
