package app

import (
	"io"
	"log/slog"

	"github.com/vk/snakepack/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and format
// registry. When no modules are passed, the core format modules are
// registered.
func NewApp(outW io.Writer, config *Config, modules ...registry.Module) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules()
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Format modules registered.", "formats", reg.Formats())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   config,
	}
}

// Registry returns the application's format registry. This is primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
