package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/fekuna/ammodeals-service/internal/listing"
	"github.com/fekuna/ammodeals-service/internal/listing/dto"
	"github.com/fekuna/ammodeals-service/internal/model"
	"github.com/fekuna/ammodeals-service/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ViewCache memoises derived views. *cache.RedisClient satisfies it.
type ViewCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type listingUseCase struct {
	repo     listing.Repository
	cache    ViewCache
	calibers []string
	logger   logger.ZapLogger
	sf       singleflight.Group
}

// NewListingUseCase wires the derivation pipeline. cache may be nil, in which
// case every call derives directly.
func NewListingUseCase(repo listing.Repository, cache ViewCache, calibers []string, log logger.ZapLogger) listing.UseCase {
	return &listingUseCase{
		repo:     repo,
		cache:    cache,
		calibers: slices.Clone(calibers),
		logger:   log,
	}
}

func (uc *listingUseCase) ListListings(ctx context.Context, state dto.ViewState) (*dto.ListingList, error) {
	cacheKey, err := uc.generateCacheKey(state)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		var cached dto.ListingList
		hit, err := uc.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("view cache read failed, deriving", zap.String("key", cacheKey), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	v, err, _ := uc.sf.Do(cacheKey, func() (any, error) {
		// Joined callers wait on this derivation, so the leader cancelling must not abort it.
		sfCtx := context.WithoutCancel(ctx)
		catalog, err := uc.repo.FindAll(sfCtx)
		if err != nil {
			return nil, err
		}
		listings := Derive(catalog, state)
		result := &dto.ListingList{Listings: listings, Total: len(listings), State: state}

		if uc.cache != nil {
			if err := uc.cache.Set(sfCtx, cacheKey, result); err != nil {
				uc.logger.Warn("view cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	result := v.(*dto.ListingList)

	return &dto.ListingList{
		Listings: slices.Clone(result.Listings),
		Total:    result.Total,
		State:    result.State,
	}, nil
}

func (uc *listingUseCase) GetListing(ctx context.Context, id int64) (*model.Listing, error) {
	l, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, listing.ErrListingNotFound
	}
	return l, nil
}

func (uc *listingUseCase) Calibers() []string {
	out := make([]string, 0, len(uc.calibers)+1)
	out = append(out, dto.AllCalibers)
	return append(out, uc.calibers...)
}

func (uc *listingUseCase) CatalogSize(ctx context.Context) (int, error) {
	all, err := uc.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (uc *listingUseCase) CatalogVersion() string {
	return uc.repo.Version()
}

func (uc *listingUseCase) generateCacheKey(state dto.ViewState) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("listings:view:%s:%x", uc.repo.Version(), md5.Sum(data)), nil
}
