package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShoeListing represents a shoe as supplied by the caller.
// Prices are in major units (dollars).
type ShoeListing struct {
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	ImageSrc    string           `json:"imageSrc"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"salePrice,omitempty"` // nil when the shoe is not discounted
	ReleaseDate time.Time        `json:"releaseDate"`
	NumOfColors int              `json:"numOfColors"`
}

// IsOnSale reports whether a sale price is set. A zero sale price still counts.
func (s ShoeListing) IsOnSale() bool {
	return s.SalePrice != nil
}
