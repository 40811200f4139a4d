package usecase

import (
	"slices"
	"strings"

	"github.com/fekuna/ammodeals-service/internal/listing/dto"
	"github.com/fekuna/ammodeals-service/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Derive projects the catalog through the view state: caliber filter, text
// filter, then a stable sort. It never modifies catalog.
//
// An empty Caliber behaves like dto.AllCalibers. An unknown sort key keeps
// catalog order.
func Derive(catalog []model.Listing, state dto.ViewState) []model.Listing {
	query := strings.ToLower(state.Query)
	allCalibers := state.Caliber == "" || state.Caliber == dto.AllCalibers

	out := make([]model.Listing, 0, len(catalog))
	for _, l := range catalog {
		if !allCalibers && l.Caliber != state.Caliber {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(l.Name), query) &&
			!strings.Contains(strings.ToLower(l.Brand), query) {
			continue
		}
		out = append(out, l)
	}

	switch state.SortBy {
	case dto.SortPricePerRound:
		slices.SortStableFunc(out, func(a, b model.Listing) int {
			return a.PricePerRound.Cmp(b.PricePerRound)
		})
	case dto.SortName:
		// a Collator keeps scratch buffers, so each call gets its own
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b model.Listing) int {
			return col.CompareString(a.Name, b.Name)
		})
	}

	return out
}
