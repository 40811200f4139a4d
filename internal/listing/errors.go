package listing

import (
	"errors"

	"github.com/fekuna/ammodeals-service/internal/listing/dto"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrInvalidSortKey  = dto.ErrInvalidSortKey
)
