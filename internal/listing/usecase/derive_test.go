package usecase

import (
	"strings"
	"testing"

	"github.com/fekuna/ammodeals-service/internal/listing/dto"
	"github.com/fekuna/ammodeals-service/internal/listing/seed"
	"github.com/fekuna/ammodeals-service/internal/model"
	"github.com/fekuna/ammodeals-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func sampleCatalog(t *testing.T) []model.Listing {
	t.Helper()
	listings, err := seed.Default(logger.NewNop())
	require.NoError(t, err)
	require.Len(t, listings, 5)
	return listings
}

func ids(listings []model.Listing) []int64 {
	out := make([]int64, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestDerive_DefaultViewSortsByPricePerRound(t *testing.T) {
	got := Derive(sampleCatalog(t), dto.DefaultViewState())
	assert.Equal(t, []int64{1, 3, 2, 4, 5}, ids(got))
}

func TestDerive_NameSort(t *testing.T) {
	got := Derive(sampleCatalog(t), dto.DefaultViewState().WithSort(dto.SortName))
	assert.Equal(t, []int64{2, 5, 3, 4, 1}, ids(got))
}

func TestDerive_CaliberFilter(t *testing.T) {
	catalog := sampleCatalog(t)

	got := Derive(catalog, dto.DefaultViewState().WithCaliber("9mm"))
	assert.Equal(t, []int64{1}, ids(got))

	got = Derive(catalog, dto.DefaultViewState().WithCaliber(".45 ACP"))
	assert.Equal(t, []int64{3}, ids(got))

	got = Derive(catalog, dto.DefaultViewState().WithCaliber("9MM"))
	assert.Empty(t, got, "caliber match is case-sensitive")

	got = Derive(catalog, dto.DefaultViewState().WithCaliber("12 gauge"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDerive_QueryMatchesNameOrBrand(t *testing.T) {
	catalog := sampleCatalog(t)

	tests := []struct {
		query string
		want  []int64
	}{
		{"federal", []int64{1}},
		{"FEDERAL", []int64{1}},
		{"hornady", []int64{5}},
		{"fmj", []int64{1, 3, 2, 4}},
		{"luger", []int64{1}},
		{"zzz", []int64{}},
		{"", []int64{1, 3, 2, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Derive(catalog, dto.DefaultViewState().WithQuery(tt.query))
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestDerive_FiltersAreConjunctive(t *testing.T) {
	catalog := sampleCatalog(t)

	got := Derive(catalog, dto.DefaultViewState().WithCaliber("9mm").WithQuery("hornady"))
	assert.Empty(t, got)

	got = Derive(catalog, dto.DefaultViewState().WithCaliber(".308").WithQuery("hornady"))
	assert.Equal(t, []int64{5}, ids(got))
}

func TestDerive_Properties(t *testing.T) {
	catalog := sampleCatalog(t)
	queries := []string{"", "a", "fmj", "win", "x", "federal"}
	calibers := []string{dto.AllCalibers, "9mm", ".223", ".45 ACP", "5.56x45", ".308", "unknown"}
	sorts := []dto.SortKey{dto.SortPricePerRound, dto.SortName}
	col := collate.New(language.English)

	for _, q := range queries {
		for _, c := range calibers {
			for _, s := range sorts {
				state := dto.ViewState{Query: q, Caliber: c, SortBy: s}
				got := Derive(catalog, state)

				for _, l := range got {
					if c != dto.AllCalibers {
						assert.Equal(t, c, l.Caliber)
					}
					lq := strings.ToLower(q)
					assert.True(t,
						strings.Contains(strings.ToLower(l.Name), lq) || strings.Contains(strings.ToLower(l.Brand), lq),
						"listing %d does not match %q", l.ID, q)
				}

				for i := 1; i < len(got); i++ {
					a, b := got[i-1], got[i]
					switch s {
					case dto.SortPricePerRound:
						assert.True(t, a.PricePerRound.LessThanOrEqual(b.PricePerRound))
					case dto.SortName:
						assert.LessOrEqual(t, col.CompareString(a.Name, b.Name), 0)
					}
				}

				assert.Equal(t, got, Derive(catalog, state), "derive is idempotent")
			}
		}
	}
}

func TestDerive_AllCalibersIsPermutation(t *testing.T) {
	catalog := sampleCatalog(t)
	got := Derive(catalog, dto.DefaultViewState())
	assert.ElementsMatch(t, ids(catalog), ids(got))

	got = Derive(catalog, dto.ViewState{SortBy: dto.SortName})
	assert.ElementsMatch(t, ids(catalog), ids(got), "empty caliber acts as the sentinel")
}

func TestDerive_StableOnTies(t *testing.T) {
	same := decimal.RequireFromString("0.40")
	catalog := []model.Listing{
		{ID: 10, Name: "Bravo", Caliber: "9mm", PricePerRound: same},
		{ID: 11, Name: "Alpha", Caliber: "9mm", PricePerRound: same},
		{ID: 12, Name: "Alpha", Caliber: "9mm", PricePerRound: decimal.RequireFromString("0.30")},
	}

	got := Derive(catalog, dto.DefaultViewState())
	assert.Equal(t, []int64{12, 10, 11}, ids(got))

	got = Derive(catalog, dto.DefaultViewState().WithSort(dto.SortName))
	assert.Equal(t, []int64{11, 12, 10}, ids(got))
}

func TestDerive_UnknownSortKeepsCatalogOrder(t *testing.T) {
	catalog := sampleCatalog(t)
	got := Derive(catalog, dto.DefaultViewState().WithSort("rating"))
	assert.Equal(t, ids(catalog), ids(got))
}

func TestDerive_DoesNotMutateCatalog(t *testing.T) {
	catalog := sampleCatalog(t)
	before := ids(catalog)
	_ = Derive(catalog, dto.DefaultViewState().WithSort(dto.SortName))
	assert.Equal(t, before, ids(catalog))
}
