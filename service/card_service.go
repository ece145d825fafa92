package service

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"time"

	"sole-and-ankle/models"
	"sole-and-ankle/templates"
	"sole-and-ankle/theme"
	"sole-and-ankle/utils"
	"sole-and-ankle/variant"
)

// DefaultDetailPrefix is the path every card links under, followed by the slug
const DefaultDetailPrefix = "/shoe/"

// CardService builds and renders shoe cards
type CardService struct {
	theme        theme.Theme
	tmpl         *template.Template
	detailPrefix string
	clock        func() time.Time
}

// NewCardService creates a new CardService. Templates are parsed once here.
func NewCardService(t theme.Theme, detailPrefix string) (*CardService, error) {
	tmpl, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if detailPrefix == "" {
		detailPrefix = DefaultDetailPrefix
	}

	return &CardService{
		theme:        t,
		tmpl:         tmpl,
		detailPrefix: detailPrefix,
		clock:        time.Now,
	}, nil
}

// SetClock replaces the clock used by Now. Intended for tests.
func (s *CardService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Now is the render time used at the HTTP boundary
func (s *CardService) Now() time.Time {
	return s.clock()
}

// BuildCard projects a listing into its view description as seen at now
func (s *CardService) BuildCard(listing models.ShoeListing, now time.Time) models.CardView {
	v := variant.For(listing, now)

	view := models.CardView{
		Href: s.detailPrefix + url.PathEscape(listing.Slug),
		Image: models.ImageView{
			Src: listing.ImageSrc,
			Alt: "",
		},
		Name:      listing.Name,
		ColorInfo: utils.Pluralize("Color", listing.NumOfColors),
		Badge:     variant.BadgeFor(v, s.theme),
		Variant:   v.String(),
		Style: models.CardStyle{
			NameColor:      s.theme.GrayShade(900),
			NameWeight:     s.theme.Weights.Medium,
			ColorInfoColor: s.theme.GrayShade(700),
		},
	}

	if listing.IsOnSale() {
		view.Price = models.PriceBlock{
			Regular: models.PriceText{
				Text:   utils.FormatPrice(listing.Price),
				Struck: true,
				Color:  s.theme.GrayShade(700),
				Weight: s.theme.Weights.Normal,
			},
			Sale: &models.PriceText{
				Text:   utils.FormatPrice(*listing.SalePrice),
				Color:  s.theme.Colors.Primary,
				Weight: s.theme.Weights.Medium,
			},
		}
	} else {
		view.Price = models.PriceBlock{
			Regular: models.PriceText{
				Text:   utils.FormatPrice(listing.Price),
				Color:  "inherit",
				Weight: s.theme.Weights.Normal,
			},
		}
	}

	return view
}

// BuildGrid builds one card per listing, keeping input order
func (s *CardService) BuildGrid(title string, listings []models.ShoeListing, now time.Time) models.GridView {
	cards := make([]models.CardView, 0, len(listings))
	for _, l := range listings {
		cards = append(cards, s.BuildCard(l, now))
	}
	return models.GridView{Title: title, Cards: cards}
}

// RenderCardHTML writes the card fragment
func (s *CardService) RenderCardHTML(w io.Writer, view models.CardView) error {
	return s.execute(w, "shoe_card", view)
}

// RenderGridHTML writes a standalone page holding every card in grid
func (s *CardService) RenderGridHTML(w io.Writer, grid models.GridView) error {
	return s.execute(w, "shoe_grid", grid)
}

// RenderCardPage renders a single card as a standalone page, used for snapshots
func (s *CardService) RenderCardPage(view models.CardView) (string, error) {
	var buf bytes.Buffer
	if err := s.RenderGridHTML(&buf, models.GridView{Title: view.Name, Cards: []models.CardView{view}}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// execute renders into a buffer first so a failing template never leaves a partial response
func (s *CardService) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
