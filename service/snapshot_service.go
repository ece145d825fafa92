package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	// Card viewport; wide enough for one card plus the page padding
	cardViewportWidth  = 464
	cardViewportHeight = 640

	// DefaultSnapshotTimeout bounds one browser session
	DefaultSnapshotTimeout = 30 * time.Second
)

// SnapshotService captures rendered card pages with headless Chrome
type SnapshotService struct {
	chromePath string
	timeout    time.Duration
	thumbs     *ThumbnailCache
}

// chromePaths are checked in order when CHROME_PATH is not usable
var chromePaths = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// detectChromePath returns configured if it exists, otherwise the first common install path found.
// An empty result lets chromedp fall back to its own lookup.
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		zap.S().Warnf("⚠️  CHROME_PATH %s not found, probing common paths", configured)
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(chromePath string, timeout time.Duration, thumbs *ThumbnailCache) *SnapshotService {
	if timeout <= 0 {
		timeout = DefaultSnapshotTimeout
	}
	return &SnapshotService{
		chromePath: detectChromePath(chromePath),
		timeout:    timeout,
		thumbs:     thumbs,
	}
}

// browser starts a Chrome instance bounded by the snapshot timeout.
// The returned cancel func releases every context it created.
func (s *SnapshotService) browser(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)

	return chromedpCtx, func() {
		chromedpCancel()
		allocCancel()
		cancel()
	}
}

// loadHTML replaces the blank page's document with html and waits for images and fonts
func loadHTML(html string) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.EmulateViewport(cardViewportWidth, cardViewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to get frame tree: %w", err)
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// Wait for fonts and images to load
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete) {
								resolve();
								return;
							}
							const timeout = setTimeout(() => resolve(), 5000);
							img.onload = () => { clearTimeout(timeout); resolve(); };
							img.onerror = () => { clearTimeout(timeout); resolve(); };
						});
					}))
				]).then(() => true);
			})();
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	}
}

// CapturePNG screenshots the first card on the page
func (s *SnapshotService) CapturePNG(ctx context.Context, html string) ([]byte, error) {
	chromedpCtx, cancel := s.browser(ctx)
	defer cancel()

	var buf []byte
	err := chromedp.Run(chromedpCtx,
		loadHTML(html),
		chromedp.Screenshot("a.shoe-card", &buf, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("failed to capture screenshot: empty image")
	}

	zap.S().Infof("📸 CapturePNG: captured %d bytes", len(buf))
	return buf, nil
}

// CapturePDF prints the page to a PDF sized to the card viewport
func (s *SnapshotService) CapturePDF(ctx context.Context, html string) ([]byte, error) {
	chromedpCtx, cancel := s.browser(ctx)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		loadHTML(html),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 96 px per inch
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(float64(cardViewportWidth) / 96).
				WithPaperHeight(float64(cardViewportHeight) / 96).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	zap.S().Infof("📄 CapturePDF: generated %d bytes", len(pdfBuf))
	return pdfBuf, nil
}

// Thumbnail returns a cached JPEG of the card page at size ("thumb" or "medium"), capturing it on a miss
func (s *SnapshotService) Thumbnail(ctx context.Context, html string, size string) ([]byte, error) {
	if !ValidSizes[size] {
		return nil, fmt.Errorf("invalid thumbnail size %q", size)
	}

	cachePath := s.thumbs.Path(html, size)
	if data, ok := s.thumbs.Lookup(cachePath); ok {
		zap.S().Debugf("✓ Thumbnail cache hit: %s", cachePath)
		return data, nil
	}

	raw, err := s.CapturePNG(ctx, html)
	if err != nil {
		return nil, err
	}
	thumb, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize snapshot: %w", err)
	}

	if err := s.thumbs.Save(cachePath, thumb); err != nil {
		// The thumbnail is still usable without the cache
		zap.S().Warnf("⚠️  Failed to cache thumbnail: %v", err)
	}
	return thumb, nil
}
