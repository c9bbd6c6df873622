package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// SourcePath is the Python file or directory to package.
	SourcePath string
	// OutputDir receives the artifact tree; defaults to the source's parent
	// directory.
	OutputDir string
	// Format is the target binary format name ("so", "pyd", "exe").
	Format string
	// IncludeDeps enables dependency analysis and archive bundling.
	IncludeDeps bool
	// Optimize opts into the unsafe speed directives; see manifest.Options.
	Optimize bool
	// BannerFile, when set, is prepended to every staged source file.
	BannerFile string
	// Python is the interpreter executable driving the toolchain.
	Python string
	// SitePackages are the dependency resolution roots; when empty the
	// interpreter is probed once at bundle time.
	SitePackages []string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SourcePath == "" {
		return nil, errors.New("SourcePath is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = "so"
	}
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	return &cfg, nil
}
