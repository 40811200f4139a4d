package model

import "github.com/shopspring/decimal"

// Listing is one purchasable ammunition offer from one retailer.
// PricePerRound is stored as given and never derived from Price/Quantity.
type Listing struct {
	ID            int64           `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	Brand         string          `db:"brand" json:"brand"`
	Caliber       string          `db:"caliber" json:"caliber"`
	GrainWeight   int             `db:"grain_weight" json:"grain_weight"`
	BulletType    string          `db:"bullet_type" json:"bullet_type"`
	Quantity      int             `db:"quantity" json:"quantity"`
	Price         decimal.Decimal `db:"price" json:"price"`
	PricePerRound decimal.Decimal `db:"price_per_round" json:"price_per_round"`
	Retailer      string          `db:"retailer" json:"retailer"`
	InStock       bool            `db:"in_stock" json:"in_stock"`
	ImageURL      string          `db:"image_url" json:"image_url"`
}

// ComputedPricePerRound is Price/Quantity rounded to cents, or zero for an empty pack.
func (l Listing) ComputedPricePerRound() decimal.Decimal {
	if l.Quantity <= 0 {
		return decimal.Zero
	}
	return l.Price.Div(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}
