// Package seed builds the immutable catalog from a YAML document.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fekuna/ammodeals-service/internal/model"
	"github.com/fekuna/ammodeals-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var ErrInvalidListing = errors.New("invalid listing")

// PriceTolerance is how far a stored price per round may drift from price/quantity
// before the loader warns about it.
var PriceTolerance = decimal.RequireFromString("0.01")

type document struct {
	Listings []record `yaml:"listings"`
}

type record struct {
	ID            int64  `yaml:"id"`
	Name          string `yaml:"name"`
	Brand         string `yaml:"brand"`
	Caliber       string `yaml:"caliber"`
	GrainWeight   int    `yaml:"grain_weight"`
	BulletType    string `yaml:"bullet_type"`
	Quantity      int    `yaml:"quantity"`
	Price         string `yaml:"price"`
	PricePerRound string `yaml:"price_per_round"`
	Retailer      string `yaml:"retailer"`
	InStock       bool   `yaml:"in_stock"`
	Image         string `yaml:"image"`
}

// Default returns the embedded sample catalog.
func Default(log logger.ZapLogger) ([]model.Listing, error) {
	return Load(bytes.NewReader(defaultCatalog), log)
}

func LoadFile(path string, log logger.ZapLogger) ([]model.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f, log)
}

// Load decodes, normalises and validates a seed document. Listings keep
// document order.
func Load(r io.Reader, log logger.ZapLogger) ([]model.Listing, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []model.Listing{}, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	out := make([]model.Listing, 0, len(doc.Listings))
	seen := make(map[int64]int, len(doc.Listings))

	for i, rec := range doc.Listings {
		l, err := rec.toListing()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d (id %d): %v", ErrInvalidListing, i, rec.ID, err)
		}
		if prev, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("%w: record %d: duplicate id %d (first at record %d)", ErrInvalidListing, i, l.ID, prev)
		}
		seen[l.ID] = i

		if !Consistent(l) {
			log.Warn("price per round disagrees with price/quantity",
				zap.Int64("listing_id", l.ID),
				zap.String("price", l.Price.String()),
				zap.Int("quantity", l.Quantity),
				zap.String("price_per_round", l.PricePerRound.String()),
				zap.String("computed", l.ComputedPricePerRound().StringFixed(2)),
			)
		}
		out = append(out, l)
	}

	log.Debug("seed catalog loaded", zap.Int("listings", len(out)))
	return out, nil
}

func (r record) toListing() (model.Listing, error) {
	var l model.Listing

	switch {
	case strings.TrimSpace(r.Name) == "":
		return l, errors.New("name is empty")
	case strings.TrimSpace(r.Brand) == "":
		return l, errors.New("brand is empty")
	case strings.TrimSpace(r.Retailer) == "":
		return l, errors.New("retailer is empty")
	case strings.TrimSpace(r.Caliber) == "":
		return l, errors.New("caliber is empty")
	case r.GrainWeight <= 0:
		return l, fmt.Errorf("grain weight %d is not positive", r.GrainWeight)
	case r.Quantity <= 0:
		return l, fmt.Errorf("quantity %d is not positive", r.Quantity)
	}

	price, err := parseMoney("price", r.Price)
	if err != nil {
		return l, err
	}
	ppr, err := parseMoney("price_per_round", r.PricePerRound)
	if err != nil {
		return l, err
	}

	return model.Listing{
		ID:            r.ID,
		Name:          r.Name,
		Brand:         r.Brand,
		Caliber:       NormalizeCaliber(r.Caliber),
		GrainWeight:   r.GrainWeight,
		BulletType:    r.BulletType,
		Quantity:      r.Quantity,
		Price:         price,
		PricePerRound: ppr,
		Retailer:      r.Retailer,
		InStock:       r.InStock,
		ImageURL:      r.Image,
	}, nil
}

func parseMoney(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", field, s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s %s is negative", field, d)
	}
	return d, nil
}

// Consistent reports whether PricePerRound is within PriceTolerance of Price/Quantity.
func Consistent(l model.Listing) bool {
	if l.Quantity <= 0 {
		return false
	}
	actual := l.Price.Div(decimal.NewFromInt(int64(l.Quantity)))
	return actual.Sub(l.PricePerRound).Abs().LessThanOrEqual(PriceTolerance)
}
