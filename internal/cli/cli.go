package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/snakepack/internal/app"
	"github.com/vk/snakepack/internal/packfile"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("snakepack", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
snakepack - Compile Python sources into distributable native modules.

Usage:
  snakepack [options] [SOURCE]

Arguments:
  SOURCE
    Path to a single .py file or a directory containing .py files.

Options:
`)
		flagSet.PrintDefaults()
	}

	sourceFlag := flagSet.String("source", "", "Path to the source file or directory.")
	sFlag := flagSet.String("s", "", "Path to the source file or directory (shorthand).")
	outputFlag := flagSet.String("output", "", "Output directory. Defaults to the source's parent directory.")
	formatFlag := flagSet.String("format", "", "Target binary format: 'so', 'pyd', or 'exe'. Defaults to 'so'.")
	packfileFlag := flagSet.String("packfile", "", "Path to an HCL packfile supplying build settings.")
	noDepsFlag := flagSet.Bool("no-deps", false, "Skip dependency analysis and archive bundling.")
	noOptimizeFlag := flagSet.Bool("no-optimize", false, "Disable aggressive optimization directives.")
	bannerFlag := flagSet.String("banner", "", "Path to a banner file prepended to every staged source.")
	pythonFlag := flagSet.String("python", "", "Interpreter executable driving the toolchain. Defaults to 'python3'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var sitePackages []string
	flagSet.Func("site-packages", "Dependency resolution root (repeatable).", func(v string) error {
		sitePackages = append(sitePackages, v)
		return nil
	})

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// Record which flags the user set explicitly; only unset flags may be
	// filled from the packfile.
	set := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	source := ""
	if *sourceFlag != "" {
		source = *sourceFlag
	} else if *sFlag != "" {
		source = *sFlag
	} else if flagSet.NArg() > 0 {
		source = flagSet.Arg(0)
	}

	cfg := app.Config{
		SourcePath:   source,
		OutputDir:    *outputFlag,
		Format:       *formatFlag,
		IncludeDeps:  !*noDepsFlag,
		Optimize:     !*noOptimizeFlag,
		BannerFile:   *bannerFlag,
		Python:       *pythonFlag,
		SitePackages: sitePackages,
	}

	if *packfileFlag != "" {
		pkg, err := packfile.Load(*packfileFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		mergePackfile(&cfg, pkg, set)
		slog.Debug("Packfile merged.", "packfile", *packfileFlag)
	}

	if cfg.SourcePath == "" {
		slog.Debug("No source path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	cfg.LogFormat = logFormat
	cfg.LogLevel = logLevel
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "source", config.SourcePath, "format", config.Format)
	return config, false, nil
}

// mergePackfile fills configuration fields the user did not set explicitly
// from the decoded packfile.
func mergePackfile(cfg *app.Config, pkg *packfile.Package, set map[string]bool) {
	if cfg.SourcePath == "" {
		cfg.SourcePath = pkg.Source
	}
	if !set["output"] && pkg.OutputDir != "" {
		cfg.OutputDir = pkg.OutputDir
	}
	if !set["format"] && pkg.Format != "" {
		cfg.Format = pkg.Format
	}
	if !set["no-deps"] && pkg.IncludeDeps != nil {
		cfg.IncludeDeps = *pkg.IncludeDeps
	}
	if !set["no-optimize"] && pkg.Optimize != nil {
		cfg.Optimize = *pkg.Optimize
	}
	if !set["banner"] && pkg.BannerFile != "" {
		cfg.BannerFile = pkg.BannerFile
	}
	if !set["python"] && pkg.Python != "" {
		cfg.Python = pkg.Python
	}
	if !set["site-packages"] && len(pkg.SitePackages) > 0 {
		cfg.SitePackages = pkg.SitePackages
	}
}
