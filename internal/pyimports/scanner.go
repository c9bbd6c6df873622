package pyimports

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/snakepack/internal/ctxlog"
)

// Analyze scans every given Python source file for import statements and
// returns the union of imported top-level module names, minus the names
// present in the standard library index.
//
// A file that cannot be scanned is logged as a warning and contributes an
// empty set; the analysis itself never fails on malformed input.
func Analyze(ctx context.Context, files []string, stdlib *Index) Set {
	logger := ctxlog.FromContext(ctx)
	deps := make(Set)

	for _, file := range files {
		names, err := ScanFile(file)
		if err != nil {
			logger.Warn("⚠️ Dependency analysis skipped a file.", "file", file, "error", err)
			continue
		}
		for _, name := range names {
			if !stdlib.Contains(name) {
				deps.Add(name)
			}
		}
	}

	logger.Info("Dependency analysis complete.", "external_dependencies", deps.Sorted())
	return deps
}

// ScanFile extracts the top-level module name of every import statement in a
// single Python source file. Plain imports contribute the first dot-separated
// segment of each imported name; "from X import ..." statements contribute
// the first segment of X. Relative imports ("from . import x") contribute
// nothing.
func ScanFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	inString := false // inside a triple-quoted string literal

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		// Track triple-quoted strings so docstrings containing the word
		// "import" are not misread as statements. An odd number of triple
		// quotes on a line toggles the state.
		quotes := strings.Count(line, `"""`) + strings.Count(line, `'''`)
		if inString {
			if quotes%2 == 1 {
				inString = false
			}
			continue
		}
		if quotes%2 == 1 {
			inString = true
		}

		// Python allows multiple simple statements per line.
		for _, stmt := range strings.Split(line, ";") {
			names = append(names, scanStatement(strings.TrimSpace(stmt))...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	return names, nil
}

// scanStatement extracts top-level module names from one trimmed statement,
// if it is an import statement.
func scanStatement(stmt string) []string {
	switch {
	case strings.HasPrefix(stmt, "import "):
		return scanPlainImport(strings.TrimPrefix(stmt, "import "))
	case strings.HasPrefix(stmt, "from "):
		return scanFromImport(strings.TrimPrefix(stmt, "from "))
	default:
		return nil
	}
}

// scanPlainImport handles "import a.b as c, d" clauses.
func scanPlainImport(clause string) []string {
	var names []string
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// Strip a trailing "as alias".
		if fields := strings.Fields(part); len(fields) > 0 {
			part = fields[0]
		}
		if name := topLevel(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// scanFromImport handles "from a.b import x" clauses. Only the module path
// before "import" matters; relative paths (leading dots) are intra-package
// imports and contribute nothing.
func scanFromImport(clause string) []string {
	fields := strings.Fields(clause)
	if len(fields) < 2 || fields[1] != "import" {
		return nil
	}
	module := fields[0]
	if strings.HasPrefix(module, ".") {
		return nil
	}
	if name := topLevel(module); name != "" {
		return []string{name}
	}
	return nil
}

// topLevel returns the first dot-separated segment of a dotted module path,
// or "" if the path is not a plausible module name.
func topLevel(module string) string {
	name, _, _ := strings.Cut(module, ".")
	if name == "" {
		return ""
	}
	for _, r := range name {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return name
}
