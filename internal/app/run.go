package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/snakepack/internal/bundle"
	"github.com/vk/snakepack/internal/collect"
	"github.com/vk/snakepack/internal/ctxlog"
	"github.com/vk/snakepack/internal/manifest"
	"github.com/vk/snakepack/internal/pyimports"
	"github.com/vk/snakepack/internal/registry"
	"github.com/vk/snakepack/internal/toolchain"
	"github.com/vk/snakepack/internal/workspace"
)

// Run executes the build pipeline. Input validation happens before any
// workspace directory is created; once a workspace exists, its release is
// guaranteed on every exit path.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger

	backend, ok := a.registry.Lookup(a.config.Format)
	if !ok {
		return fmt.Errorf("unsupported format %q, available: %s",
			a.config.Format, strings.Join(a.registry.Formats(), ", "))
	}

	target, err := workspace.NewTarget(a.config.SourcePath)
	if err != nil {
		return err
	}

	outputDir := a.config.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(target.Path)
	}
	outputDir, err = filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger.Info("🚀 Starting build pipeline.",
		"source", target.Path, "format", a.config.Format, "output_dir", outputDir)

	deps := pyimports.NewSet()
	if a.config.IncludeDeps {
		files, err := target.SourceFiles()
		if err != nil {
			return err
		}
		deps = pyimports.Analyze(ctx, files, pyimports.DefaultIndex())
	}

	ws, err := workspace.New(ctx)
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if err := ws.Release(ctx); err != nil {
			logger.Warn("⚠️ Workspace cleanup failed.", "error", err)
		}
	}()

	staged, err := ws.Stage(ctx, target, workspace.StageOptions{
		Banner:       a.loadBanner(ctx),
		StagedSuffix: backend.StagedSuffix(),
	})
	if err != nil {
		return err
	}

	units, err := manifest.UnitsFromPaths(staged, backend.StagedSuffix())
	if err != nil {
		return err
	}

	inv, err := backend.Prepare(ctx, ws, units, registry.BuildOptions{
		PackageName: target.Stem,
		Python:      a.config.Python,
		Optimize:    a.config.Optimize,
		OneFile:     !a.config.IncludeDeps,
	})
	if err != nil {
		return err
	}

	if _, err := toolchain.Run(ctx, inv); err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	collectOpts := collect.Options{
		OutputRoot:     backend.OutputRoot(ws),
		OutputDir:      outputDir,
		ArtifactSuffix: backend.ArtifactSuffix(),
	}
	if target.Kind == workspace.KindDir {
		collectOpts.SourceRoot = target.Path
		collectOpts.InitPrefix = target.Stem
	}
	artifacts, err := collect.Collect(ctx, collectOpts)
	if err != nil {
		return err
	}
	logger.Info("✅ Build complete.", "artifacts", artifacts)

	if a.config.IncludeDeps && len(deps) > 0 {
		if err := a.bundleDependencies(ctx, target, outputDir, artifacts, deps); err != nil {
			return err
		}
	}

	logger.Info("🏁 Pipeline finished.", "output_dir", outputDir)
	return nil
}

// loadBanner reads the configured banner file. An unreadable banner degrades
// to a warning; staging proceeds without injection.
func (a *App) loadBanner(ctx context.Context) []byte {
	if a.config.BannerFile == "" {
		return nil
	}
	banner, err := os.ReadFile(a.config.BannerFile)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("⚠️ Banner file unreadable, continuing without banner.",
			"banner_file", a.config.BannerFile, "error", err)
		return nil
	}
	return banner
}

// bundleDependencies resolves the analyzed dependencies and writes the
// combined archive next to the artifact tree. Only the collected artifacts
// enter the archive root; whatever else lives in the output directory is not
// ours to bundle.
func (a *App) bundleDependencies(ctx context.Context, target *workspace.Target, outputDir string, artifacts []string, deps pyimports.Set) error {
	logger := ctxlog.FromContext(ctx)

	roots := a.config.SitePackages
	if len(roots) == 0 {
		probed, err := bundle.ProbeSitePackages(ctx, a.config.Python)
		if err != nil {
			logger.Warn("⚠️ site-packages probe failed; dependencies will not resolve.", "error", err)
		} else {
			roots = probed
		}
	}

	entries, err := bundle.DependencyEntries(ctx, bundle.NewIndexResolver(roots), deps.Sorted())
	if err != nil {
		return err
	}

	entries = append(entries, bundle.ArtifactEntries(outputDir, artifacts)...)

	return bundle.WriteArchive(ctx, filepath.Join(outputDir, bundle.ArchiveName(target.Stem)), entries)
}
