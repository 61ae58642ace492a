package table

import (
	"path/filepath"
)

// GlobLister resolves selection patterns with filepath.Glob. Glob
// returns lexically sorted paths, which becomes the dataset row order.
type GlobLister struct{}

// NewGlobLister creates a glob-based file lister.
func NewGlobLister() *GlobLister {
	return &GlobLister{}
}

// List returns the files matching pattern.
func (l *GlobLister) List(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}
