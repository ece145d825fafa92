package app

import (
	"go.uber.org/zap"

	"sole-and-ankle/config"
)

// SetupLogger installs the global zap logger: JSON in production, console otherwise.
// The returned func flushes buffered entries.
func SetupLogger(cfg config.Config) (func(), error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	logger, err := zapConfig.Build(zap.AddCaller())
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	return func() { _ = logger.Sync() }, nil
}
