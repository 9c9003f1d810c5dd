package asset

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/glitchwizard/tcore/internal/devdep"
	"github.com/glitchwizard/tcore/internal/invalidation"
)

// ReadFile reads the full content of a project-relative file path. The
// transformation core never touches a real filesystem directly; callers
// supply this so tests can stub it and a real build can wire in whatever
// filesystem abstraction the wider bundler uses.
type ReadFile func(path string) ([]byte, error)

// Load builds the initial UncommittedAsset for a request: it reads
// content (from code if supplied, else from disk via read), computes its
// size and content hash, and derives idBase and a default isSource
// judgment. isSourceOverride, if non-nil, wins over the default.
func Load(
	filePath string,
	code []byte,
	isSourceOverride *bool,
	read ReadFile,
	invalidations *invalidation.Tracker,
	devdeps *devdep.Ledger,
) (*UncommittedAsset, error) {
	content := code
	if content == nil {
		c, err := read(filePath)
		if err != nil {
			return nil, err
		}
		content = c
		invalidations.AddFile(filePath)
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	isSource := defaultIsSource(filePath)
	if isSourceOverride != nil {
		isSource = *isSourceOverride
	}

	idBase := filePath
	if code != nil {
		idBase = hash
	}

	typ := strings.TrimPrefix(filepath.Ext(filePath), ".")

	return &UncommittedAsset{
		IDBase:   idBase,
		IsSource: isSource,
		Content:  content,
		Value: Value{
			FilePath:    filePath,
			Type:        typ,
			ContentHash: hash,
			Size:        int64(len(content)),
		},
		invalidations: invalidations,
		devdeps:       devdeps,
	}, nil
}

// defaultIsSource judges a path to be a non-source (vendored) dependency
// when it lives under a node_modules tree, mirroring the ecosystem
// convention that code under node_modules is not the user's own source.
func defaultIsSource(filePath string) bool {
	return !strings.Contains(filepath.ToSlash(filePath), "/node_modules/") &&
		!strings.HasPrefix(filepath.ToSlash(filePath), "node_modules/")
}
