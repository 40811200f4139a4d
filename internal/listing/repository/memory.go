package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"slices"

	"github.com/fekuna/ammodeals-service/internal/model"
)

// MemoryRepository is the immutable Catalog Store. It is built once at start-up
// and only ever hands out copies.
type MemoryRepository struct {
	listings []model.Listing
	byID     map[int64]int
	version  string
}

func NewMemoryRepository(listings []model.Listing) *MemoryRepository {
	r := &MemoryRepository{
		listings: slices.Clone(listings),
		byID:     make(map[int64]int, len(listings)),
	}
	for i, l := range r.listings {
		if _, ok := r.byID[l.ID]; !ok {
			r.byID[l.ID] = i
		}
	}
	r.version = catalogVersion(r.listings)
	return r
}

func (r *MemoryRepository) FindAll(ctx context.Context) ([]model.Listing, error) {
	return slices.Clone(r.listings), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (*model.Listing, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	l := r.listings[i]
	return &l, nil
}

func (r *MemoryRepository) Version() string {
	return r.version
}

func (r *MemoryRepository) Len() int {
	return len(r.listings)
}

func catalogVersion(listings []model.Listing) string {
	data, err := json.Marshal(listings)
	if err != nil {
		return "unversioned"
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:8])
}
