package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	tcerrors "github.com/glitchwizard/tcore/internal/errors"
)

// FSResolver is a minimal, filesystem-backed PackageManager: it resolves a
// bare specifier by walking resolveFrom's ancestor directories looking for
// node_modules/<specifier>, the same search order Node-style resolution
// uses. It exists for tests and the CLI demo command; a real resolver with
// package.json "exports" support, workspaces, and a resolution cache is a
// collaborator, out of scope.
type FSResolver struct {
	mu            sync.Mutex
	resolved      map[string]string
	invalidations map[string]Invalidations
}

// NewFSResolver returns an FSResolver with an empty resolution cache.
func NewFSResolver() *FSResolver {
	return &FSResolver{
		resolved:      make(map[string]string),
		invalidations: make(map[string]Invalidations),
	}
}

func key(specifier, resolveFrom string) string {
	return specifier + ":" + resolveFrom
}

// Resolve walks ancestors of resolveFrom looking for
// <ancestor>/node_modules/<specifier>/package.json.
func (r *FSResolver) Resolve(specifier, resolveFrom string) (string, error) {
	k := key(specifier, resolveFrom)

	r.mu.Lock()
	if resolved, ok := r.resolved[k]; ok {
		r.mu.Unlock()
		return resolved, nil
	}
	r.mu.Unlock()

	dir := filepath.Dir(resolveFrom)
	var walked []string
	for {
		candidate := filepath.Join(dir, "node_modules", specifier)
		manifest := filepath.Join(candidate, "package.json")
		walked = append(walked, manifest)

		if _, err := os.Stat(manifest); err == nil {
			r.mu.Lock()
			r.resolved[k] = candidate
			r.invalidations[k] = Invalidations{
				InvalidateOnFileChange: walked,
				InvalidateOnFileCreate: nil,
			}
			r.mu.Unlock()
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	r.mu.Lock()
	r.invalidations[k] = Invalidations{
		InvalidateOnFileCreate: []string{filepath.Join("**", "node_modules", specifier, "package.json")},
	}
	r.mu.Unlock()

	return "", fmt.Errorf("%w: package %q not found from %q", tcerrors.ErrNotFound, specifier, resolveFrom)
}

// Invalidate drops the cached resolution for (specifier, resolveFrom).
func (r *FSResolver) Invalidate(specifier, resolveFrom string) {
	k := key(specifier, resolveFrom)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resolved, k)
}

// GetInvalidations reports the invalidations accumulated by the most
// recent Resolve call for (specifier, resolveFrom); the zero value if
// Resolve was never called.
func (r *FSResolver) GetInvalidations(specifier, resolveFrom string) Invalidations {
	k := key(specifier, resolveFrom)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invalidations[k]
}
