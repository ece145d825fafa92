package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sole-and-ankle/models"
	"sole-and-ankle/service"
	"sole-and-ankle/theme"
)

var testNow = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

type fakeSnapshots struct {
	err      error
	lastHTML string
	lastCall string
}

func (f *fakeSnapshots) capture(call, html string) ([]byte, error) {
	f.lastCall = call
	f.lastHTML = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte(call), nil
}

func (f *fakeSnapshots) CapturePNG(_ context.Context, html string) ([]byte, error) {
	return f.capture("png", html)
}

func (f *fakeSnapshots) CapturePDF(_ context.Context, html string) ([]byte, error) {
	return f.capture("pdf", html)
}

func (f *fakeSnapshots) Thumbnail(_ context.Context, html string, size string) ([]byte, error) {
	return f.capture("thumb:"+size, html)
}

func newTestController(t *testing.T) (*CardController, *fakeSnapshots) {
	t.Helper()
	cards, err := service.NewCardService(theme.Default(), "")
	require.NoError(t, err)
	cards.SetClock(func() time.Time { return testNow })

	snaps := &fakeSnapshots{}
	return NewCardController(cards, snaps), snaps
}

func daysAgo(n int) string {
	return testNow.AddDate(0, 0, -n).Format(time.RFC3339)
}

func saleBody() string {
	return `{"slug":"air-max-90","name":"Air Max 90","imageSrc":"/img/am90.jpg","price":150,"salePrice":110,"releaseDate":"` + daysAgo(10) + `","numOfColors":3}`
}

func post(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRenderCard_JSON(t *testing.T) {
	c, _ := newTestController(t)

	rec := post(t, c.RenderCard, "/cards/render", saleBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var view models.CardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "/shoe/air-max-90", view.Href)
	assert.Equal(t, "on-sale", view.Variant)
	assert.Equal(t, "$150.00", view.Price.Regular.Text)
	assert.True(t, view.Price.Regular.Struck)
	require.NotNil(t, view.Price.Sale)
	assert.Equal(t, "$110.00", view.Price.Sale.Text)
	require.NotNil(t, view.Badge)
	assert.Equal(t, "Sale", view.Badge.Text)
}

func TestRenderCard_JSONOmitsBadgeForDefault(t *testing.T) {
	c, _ := newTestController(t)

	body := `{"slug":"pegasus","name":"Pegasus","price":"89.9","releaseDate":"2022-01-01T00:00:00Z","numOfColors":1}`
	rec := post(t, c.RenderCard, "/cards/render?format=json", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "badge")
	assert.Equal(t, "default", raw["variant"])
	assert.Equal(t, "1 Color", raw["colorInfo"])
}

func TestRenderCard_HTML(t *testing.T) {
	c, _ := newTestController(t)

	body := `{"slug":"react","name":"React","price":160,"releaseDate":"` + daysAgo(5) + `","numOfColors":2}`
	rec := post(t, c.RenderCard, "/cards/render?format=html", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	html := rec.Body.String()
	assert.Contains(t, html, ">$160.00</span>")
	assert.NotContains(t, html, "line-through")
	assert.Contains(t, html, ">Just Released!</div>")
}

func TestRenderCard_Snapshots(t *testing.T) {
	tests := []struct {
		target      string
		wantCall    string
		contentType string
	}{
		{"/cards/render?format=png", "png", "image/png"},
		{"/cards/render?format=png&thumb=1", "thumb:thumb", "image/jpeg"},
		{"/cards/render?format=png&thumb=1&size=medium", "thumb:medium", "image/jpeg"},
		{"/cards/render?format=pdf", "pdf", "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCall, func(t *testing.T) {
			c, snaps := newTestController(t)

			rec := post(t, c.RenderCard, tt.target, saleBody())
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantCall, rec.Body.String())
			assert.Equal(t, tt.wantCall, snaps.lastCall)
			assert.Contains(t, snaps.lastHTML, "<!DOCTYPE html>")
			assert.Contains(t, snaps.lastHTML, ">Sale</div>")
		})
	}
}

func TestRenderCard_SnapshotFailure(t *testing.T) {
	c, snaps := newTestController(t)
	snaps.err = errors.New("chrome not found")

	rec := post(t, c.RenderCard, "/cards/render?format=png", saleBody())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "chrome not found")
}

func TestRenderCard_BadRequests(t *testing.T) {
	c, _ := newTestController(t)

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"invalid json", "/cards/render", "{"},
		{"missing slug", "/cards/render", `{"name":"X","price":1,"releaseDate":"2024-01-01T00:00:00Z","numOfColors":1}`},
		{"missing name", "/cards/render", `{"slug":"x","price":1,"releaseDate":"2024-01-01T00:00:00Z","numOfColors":1}`},
		{"bad price", "/cards/render", `{"slug":"x","name":"X","price":"cheap","releaseDate":"2024-01-01T00:00:00Z"}`},
		{"unknown format", "/cards/render?format=gif", saleBody()},
		{"unknown thumbnail size", "/cards/render?format=png&thumb=1&size=huge", saleBody()},
		{"trailing garbage", "/cards/render", saleBody() + " junk"},
		{"two objects", "/cards/render", saleBody() + saleBody()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, c.RenderCard, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRenderCard_TrailingWhitespaceIsFine(t *testing.T) {
	c, _ := newTestController(t)

	rec := post(t, c.RenderCard, "/cards/render", saleBody()+"\n  ")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRenderCard_MethodNotAllowed(t *testing.T) {
	c, _ := newTestController(t)

	req := httptest.NewRequest(http.MethodGet, "/cards/render", nil)
	rec := httptest.NewRecorder()
	c.RenderCard(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	c.RenderGrid(rec, httptest.NewRequest(http.MethodGet, "/cards/grid", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRenderGrid_HTML(t *testing.T) {
	c, _ := newTestController(t)

	body := "[" + saleBody() + `,{"slug":"old","name":"Old","price":90,"releaseDate":"2020-05-01T00:00:00Z","numOfColors":4}]`
	rec := post(t, c.RenderGrid, "/cards/grid?title=Running", body)
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, "<title>Running</title>")
	assert.Equal(t, 2, strings.Count(html, `<a class="shoe-card"`))
	assert.Equal(t, 1, strings.Count(html, `<div class="flag"`))
}

func TestRenderGrid_JSON(t *testing.T) {
	c, _ := newTestController(t)

	rec := post(t, c.RenderGrid, "/cards/grid?format=json", "["+saleBody()+"]")
	require.Equal(t, http.StatusOK, rec.Code)

	var grid models.GridView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grid))
	assert.Equal(t, "Shoes", grid.Title)
	require.Len(t, grid.Cards, 1)
	assert.Equal(t, "on-sale", grid.Cards[0].Variant)
}

func TestRenderGrid_BadRequests(t *testing.T) {
	c, _ := newTestController(t)

	rec := post(t, c.RenderGrid, "/cards/grid", `{"slug":"not-an-array"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, c.RenderGrid, "/cards/grid", `[{"slug":"","name":"X"}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "listing 0")

	rec = post(t, c.RenderGrid, "/cards/grid?format=pdf", "[]")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, c.RenderGrid, "/cards/grid", "["+saleBody()+"] junk")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
