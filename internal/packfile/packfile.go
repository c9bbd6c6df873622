// Package packfile loads the optional declarative build file. A packfile
// describes one package block with the same surface the CLI flags expose;
// explicit flags override packfile values.
//
//	package "calc" {
//	  source       = "calc.py"
//	  output_dir   = "dist"
//	  format       = "so"
//	  optimize     = true
//	  include_deps = true
//	  banner_file  = env.HOME + "/banner.txt"
//	}
//
// Attribute expressions are full HCL expressions with the process
// environment exposed as the env object.
package packfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Package is the decoded package block.
type Package struct {
	// Name labels the block; it is informational and does not override the
	// output package name derived from the source path.
	Name         string   `hcl:"name,label"`
	Source       string   `hcl:"source"`
	OutputDir    string   `hcl:"output_dir,optional"`
	Format       string   `hcl:"format,optional"`
	Optimize     *bool    `hcl:"optimize,optional"`
	IncludeDeps  *bool    `hcl:"include_deps,optional"`
	BannerFile   string   `hcl:"banner_file,optional"`
	Python       string   `hcl:"python,optional"`
	SitePackages []string `hcl:"site_packages,optional"`
}

// root is the top-level packfile schema.
type root struct {
	Package *Package `hcl:"package,block"`
}

// Load parses and decodes a packfile. Relative source, output and banner
// paths are resolved against the packfile's own directory.
func Load(path string) (*Package, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse packfile %s: %w", path, diags)
	}

	var decoded root
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("decode packfile %s: %w", path, diags)
	}
	if decoded.Package == nil {
		return nil, fmt.Errorf("packfile %s contains no package block", path)
	}

	pkg := decoded.Package
	base := filepath.Dir(path)
	pkg.Source = resolveRelative(base, pkg.Source)
	pkg.OutputDir = resolveRelative(base, pkg.OutputDir)
	pkg.BannerFile = resolveRelative(base, pkg.BannerFile)

	return pkg, nil
}

// evalContext exposes the process environment as the env object.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}

// resolveRelative anchors a relative path at base; empty and absolute paths
// pass through.
func resolveRelative(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
