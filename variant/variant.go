// Package variant decides how a shoe card is flagged: on sale, new release or neither.
package variant

import (
	"time"

	"sole-and-ankle/models"
	"sole-and-ankle/theme"
	"sole-and-ankle/utils"
)

// Variant is the display category of a listing
type Variant int

const (
	Default Variant = iota
	NewRelease
	OnSale
)

func (v Variant) String() string {
	switch v {
	case NewRelease:
		return "new-release"
	case OnSale:
		return "on-sale"
	default:
		return "default"
	}
}

// Resolve applies the precedence chain: a sale beats a new release, which beats default.
func Resolve(onSale, recent bool) Variant {
	if onSale {
		return OnSale
	}
	if recent {
		return NewRelease
	}
	return Default
}

// For resolves the variant of a listing as seen at now.
func For(listing models.ShoeListing, now time.Time) Variant {
	return Resolve(listing.IsOnSale(), utils.IsNewRelease(listing.ReleaseDate, now))
}

// BadgeFor returns the corner badge for v, or nil when v shows no badge.
func BadgeFor(v Variant, t theme.Theme) *models.BadgeView {
	var text, background string
	switch v {
	case OnSale:
		text, background = "Sale", t.Colors.Primary
	case NewRelease:
		text, background = "Just Released!", t.Colors.Secondary
	default:
		// Default never shows a badge, not even an empty one.
		return nil
	}

	return &models.BadgeView{
		Text:       text,
		Background: background,
		Color:      t.Colors.White,
		Weight:     t.Weights.Bold,
	}
}
