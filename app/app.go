package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"sole-and-ankle/app/controller"
	"sole-and-ankle/app/router"
	"sole-and-ankle/config"
	"sole-and-ankle/service"
	"sole-and-ankle/theme"
)

// Initialize wires services and controllers and returns the HTTP handler
func Initialize(cfg config.Config) (http.Handler, error) {
	// Theme: file when configured, built-in palette otherwise
	t := theme.Default()
	if cfg.ThemePath != "" {
		loaded, err := theme.Load(cfg.ThemePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load theme: %w", err)
		}
		t = loaded
		zap.S().Infof("✓ Theme loaded from %s", cfg.ThemePath)
	}

	cards, err := service.NewCardService(t, cfg.DetailPrefix)
	if err != nil {
		return nil, err
	}

	thumbs := service.NewThumbnailCache(cfg.SnapshotCache)
	if err := thumbs.EnsureDir(); err != nil {
		return nil, err
	}
	snapshots := service.NewSnapshotService(cfg.ChromePath, cfg.SnapshotTimeout, thumbs)

	// Create controllers
	controllers := &router.Controllers{
		Card: controller.NewCardController(cards, snapshots),
	}

	return router.SetupRoutes(controllers), nil
}
