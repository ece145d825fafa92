package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"sole-and-ankle/models"
	"sole-and-ankle/service"
)

// maxBodyBytes bounds listing payloads
const maxBodyBytes = 1 << 20

// CardController handles HTTP requests for shoe cards
type CardController struct {
	cards     *service.CardService
	snapshots service.SnapshotServiceInterface
}

// NewCardController creates a new CardController
func NewCardController(cards *service.CardService, snapshots service.SnapshotServiceInterface) *CardController {
	return &CardController{
		cards:     cards,
		snapshots: snapshots,
	}
}

// validCardFormats is a map of valid format values for a single card
var validCardFormats = map[string]bool{
	"json": true,
	"html": true,
	"png":  true,
	"pdf":  true,
}

// validateListing checks the fields a card cannot be built without
func validateListing(l models.ShoeListing) error {
	if strings.TrimSpace(l.Slug) == "" {
		return fmt.Errorf("slug is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// decodeJSON decodes a bounded request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	// The body must hold exactly one JSON value
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return fmt.Errorf("invalid request body: unexpected data after JSON value")
	}
	return nil
}

// RenderCard handles POST /cards/render?format=json|html|png|pdf[&thumb=1[&size=thumb|medium]]
func (c *CardController) RenderCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		zap.S().Warnf("❌ RenderCard: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "json"
	}
	if !validCardFormats[format] {
		zap.S().Warnf("❌ RenderCard: Invalid format: %s", format)
		http.Error(w, "Invalid format. Valid formats: json, html, png, pdf", http.StatusBadRequest)
		return
	}

	thumbSize := ""
	if format == "png" && r.URL.Query().Get("thumb") == "1" {
		thumbSize = strings.ToLower(strings.TrimSpace(r.URL.Query().Get("size")))
		if thumbSize == "" {
			thumbSize = "thumb"
		}
		if !service.ValidSizes[thumbSize] {
			zap.S().Warnf("❌ RenderCard: Invalid thumbnail size: %s", thumbSize)
			http.Error(w, "Invalid size. Valid sizes: thumb, medium", http.StatusBadRequest)
			return
		}
	}

	var listing models.ShoeListing
	if err := decodeJSON(w, r, &listing); err != nil {
		zap.S().Warnf("❌ RenderCard: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateListing(listing); err != nil {
		zap.S().Warnf("❌ RenderCard: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := c.cards.BuildCard(listing, c.cards.Now())
	zap.S().Infof("🃏 RenderCard: slug=%s variant=%s format=%s", listing.Slug, view.Variant, format)

	switch format {
	case "json":
		writeJSON(w, view)
	case "html":
		var buf bytes.Buffer
		if err := c.cards.RenderCardHTML(&buf, view); err != nil {
			zap.S().Errorf("❌ RenderCard: Error rendering HTML: %v", err)
			http.Error(w, "Failed to render card", http.StatusInternalServerError)
			return
		}
		writeBody(w, "text/html; charset=utf-8", buf.Bytes())
	case "png", "pdf":
		c.writeSnapshot(w, r, view, format, thumbSize)
	}
}

// writeSnapshot renders the card page and captures it through the snapshot service
// thumbSize is empty unless a cached JPEG was requested
func (c *CardController) writeSnapshot(w http.ResponseWriter, r *http.Request, view models.CardView, format string, thumbSize string) {
	page, err := c.cards.RenderCardPage(view)
	if err != nil {
		zap.S().Errorf("❌ RenderCard: Error rendering page: %v", err)
		http.Error(w, "Failed to render card", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	var (
		data        []byte
		contentType string
	)
	switch {
	case format == "pdf":
		data, err = c.snapshots.CapturePDF(ctx, page)
		contentType = "application/pdf"
	case thumbSize != "":
		data, err = c.snapshots.Thumbnail(ctx, page, thumbSize)
		contentType = "image/jpeg"
	default:
		data, err = c.snapshots.CapturePNG(ctx, page)
		contentType = "image/png"
	}
	if err != nil {
		zap.S().Errorf("❌ RenderCard: Error capturing %s: %v", format, err)
		http.Error(w, fmt.Sprintf("Failed to capture card: %v", err), http.StatusInternalServerError)
		return
	}

	writeBody(w, contentType, data)
}

// RenderGrid handles POST /cards/grid?format=html|json[&title=...]
func (c *CardController) RenderGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		zap.S().Warnf("❌ RenderGrid: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "json" {
		zap.S().Warnf("❌ RenderGrid: Invalid format: %s", format)
		http.Error(w, "Invalid format. Valid formats: html, json", http.StatusBadRequest)
		return
	}

	var listings []models.ShoeListing
	if err := decodeJSON(w, r, &listings); err != nil {
		zap.S().Warnf("❌ RenderGrid: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for i, l := range listings {
		if err := validateListing(l); err != nil {
			zap.S().Warnf("❌ RenderGrid: listing %d: %v", i, err)
			http.Error(w, fmt.Sprintf("listing %d: %v", i, err), http.StatusBadRequest)
			return
		}
	}

	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		title = "Shoes"
	}

	grid := c.cards.BuildGrid(title, listings, c.cards.Now())
	zap.S().Infof("🃏 RenderGrid: %d cards format=%s", len(grid.Cards), format)

	if format == "json" {
		writeJSON(w, grid)
		return
	}

	var buf bytes.Buffer
	if err := c.cards.RenderGridHTML(&buf, grid); err != nil {
		zap.S().Errorf("❌ RenderGrid: Error rendering HTML: %v", err)
		http.Error(w, "Failed to render grid", http.StatusInternalServerError)
		return
	}
	writeBody(w, "text/html; charset=utf-8", buf.Bytes())
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		zap.S().Errorf("❌ Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	writeBody(w, "application/json", data)
}

func writeBody(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		zap.S().Warnf("⚠️  Error writing response: %v", err)
	}
}
