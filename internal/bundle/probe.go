package bundle

import (
	"context"
	"strings"

	"github.com/vk/snakepack/internal/toolchain"
)

// probeScript prints the interpreter's site-packages directories, one per
// line.
const probeScript = "import site; [print(p) for p in site.getsitepackages() + [site.getusersitepackages()]]"

// ProbeSitePackages asks the given interpreter for its site-packages roots.
// The probe runs once at startup; resolution afterwards is a pure filesystem
// scan over the returned roots.
func ProbeSitePackages(ctx context.Context, python string) ([]string, error) {
	res, err := toolchain.Run(ctx, toolchain.Invocation{
		Args: []string{python, "-c", probeScript},
	})
	if err != nil {
		return nil, err
	}

	var roots []string
	for _, line := range strings.Split(string(res.Stdout), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			roots = append(roots, line)
		}
	}
	return roots, nil
}
