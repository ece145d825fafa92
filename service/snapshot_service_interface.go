package service

import "context"

// SnapshotServiceInterface defines the contract for capturing rendered card pages
type SnapshotServiceInterface interface {
	CapturePNG(ctx context.Context, html string) ([]byte, error)
	CapturePDF(ctx context.Context, html string) ([]byte, error)
	// Thumbnail returns a cached JPEG at size, capturing the page on a cache miss
	Thumbnail(ctx context.Context, html string, size string) ([]byte, error)
}

// Ensure SnapshotService implements SnapshotServiceInterface
var _ SnapshotServiceInterface = (*SnapshotService)(nil)
