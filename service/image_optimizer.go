package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ThumbnailCache stores optimized card snapshots on disk, keyed by the rendered HTML
type ThumbnailCache struct {
	dir string
}

// NewThumbnailCache creates a cache rooted at dir
func NewThumbnailCache(dir string) *ThumbnailCache {
	return &ThumbnailCache{dir: dir}
}

// EnsureDir ensures the cache directory exists, creates it if it doesn't
func (c *ThumbnailCache) EnsureDir() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Path returns the cache file path for a rendered page and size
func (c *ThumbnailCache) Path(html string, size string) string {
	sum := sha256.Sum256([]byte(html))
	filename := fmt.Sprintf("card_%s_%s.jpg", hex.EncodeToString(sum[:12]), size)
	return filepath.Join(c.dir, filename)
}

// Exists checks if a cached image exists
func (c *ThumbnailCache) Exists(cachePath string) bool {
	_, err := os.Stat(cachePath)
	return err == nil
}

// Read reads an image from the cache
func (c *ThumbnailCache) Read(cachePath string) ([]byte, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, nil
}

// Lookup returns the cached JPEG at cachePath. A missing, empty or undecodable file is a miss.
func (c *ThumbnailCache) Lookup(cachePath string) ([]byte, bool) {
	if !c.Exists(cachePath) {
		return nil, false
	}
	data, err := c.Read(cachePath)
	if err != nil {
		zap.S().Warnf("⚠️  Thumbnail cache read failed: %v", err)
		return nil, false
	}
	if len(data) == 0 {
		zap.S().Warnf("⚠️  Empty thumbnail in cache: %s", cachePath)
		return nil, false
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		zap.S().Warnf("⚠️  Corrupt thumbnail in cache %s: %v", cachePath, err)
		return nil, false
	}
	return data, true
}

// Save saves an image to the cache. The data goes to a temp file in the same
// directory first and is renamed into place, so readers never see a partial file.
func (c *ThumbnailCache) Save(cachePath string, imageData []byte) error {
	// Ensure parent directory exists
	dir := filepath.Dir(cachePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".card-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(imageData); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to chmod cache file: %w", err)
	}
	if err := os.Rename(tmpPath, cachePath); err != nil {
		return fmt.Errorf("failed to move cache file into place: %w", err)
	}

	zap.S().Debugf("✓ Image cached: %s", cachePath)
	return nil
}

// ValidSizes are the size buckets OptimizeImage accepts
var ValidSizes = map[string]bool{
	"thumb":  true,
	"medium": true,
}

// OptimizeImage converts an image to JPEG and shrinks it to fit the size bucket
// imageData: raw image bytes (PNG, JPEG)
// size: "thumb" or "medium"
// Note: JPEG instead of WebP to avoid a CGO dependency.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	zap.S().Debugf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	var maxDim int
	var quality int

	switch size {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	case "medium":
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		zap.S().Warnf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resizedImg image.Image = img
	if width > maxDim || height > maxDim {
		// Keep the aspect ratio; imaging computes the missing side when it is 0
		if width > height {
			resizedImg = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			resizedImg = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
		zap.S().Debugf("🔄 Resized image: %dx%d -> %v", width, height, resizedImg.Bounds().Size())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resizedImg, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
