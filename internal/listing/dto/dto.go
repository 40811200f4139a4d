package dto

import (
	"errors"
	"fmt"

	"github.com/fekuna/ammodeals-service/internal/model"
)

var ErrInvalidSortKey = errors.New("invalid sort key")

// AllCalibers is the caliber sentinel that disables the caliber filter.
const AllCalibers = "all"

type SortKey string

const (
	SortPricePerRound SortKey = "price"
	SortName          SortKey = "name"
)

// ParseSortKey maps the sort dropdown value; empty means the default.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortPricePerRound, nil
	case SortPricePerRound, SortName:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
}

// ViewState holds the three user controls of the comparison page.
// It is a value; the With methods return a replaced copy.
type ViewState struct {
	Query   string  `json:"query"`
	Caliber string  `json:"caliber"`
	SortBy  SortKey `json:"sort"`
}

func DefaultViewState() ViewState {
	return ViewState{
		Caliber: AllCalibers,
		SortBy:  SortPricePerRound,
	}
}

func (s ViewState) WithQuery(q string) ViewState {
	s.Query = q
	return s
}

// WithCaliber sets the caliber filter; empty selects the sentinel.
func (s ViewState) WithCaliber(c string) ViewState {
	if c == "" {
		c = AllCalibers
	}
	s.Caliber = c
	return s
}

func (s ViewState) WithSort(k SortKey) ViewState {
	s.SortBy = k
	return s
}

// ListingList is the derived view returned to front ends.
type ListingList struct {
	Listings []model.Listing `json:"listings"`
	Total    int             `json:"total"`
	State    ViewState       `json:"state"`
}
