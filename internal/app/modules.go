package app

import (
	"github.com/vk/snakepack/internal/registry"
	"github.com/vk/snakepack/modules/cython"
	"github.com/vk/snakepack/modules/pyinstaller"
)

// coreModules lists the format modules every default App instance registers.
func coreModules() []registry.Module {
	return []registry.Module{
		&cython.Module{},
		&pyinstaller.Module{},
	}
}
