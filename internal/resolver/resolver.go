// Package resolver defines the package-manager collaborator a transformer
// runtime adapter consults when a plugin declares a dev-dependency on a
// node_modules-style specifier.
package resolver

// PackageManager resolves bare package specifiers to on-disk locations and
// reports which files, if changed or created, should invalidate a prior
// resolution. A real implementation talks to an actual package manager's
// resolution algorithm; tcore depends only on this narrow seam.
type PackageManager interface {
	// Resolve locates specifier relative to resolveFrom, returning the
	// resolved absolute path. Resolving may itself populate the
	// invalidation set returned by GetInvalidations (e.g. every
	// directory walked while searching for a node_modules entry).
	Resolve(specifier, resolveFrom string) (string, error)

	// Invalidate drops any cached resolution for (specifier, resolveFrom)
	// so the next Resolve call re-walks the filesystem.
	Invalidate(specifier, resolveFrom string)

	// GetInvalidations reports the file-change and file-create
	// invalidations accumulated while resolving (specifier, resolveFrom).
	GetInvalidations(specifier, resolveFrom string) Invalidations
}

// Invalidations describes what should invalidate a single package
// resolution.
type Invalidations struct {
	// InvalidateOnFileChange lists absolute file paths whose content
	// change should invalidate the resolution (e.g. the package's own
	// package.json, and every package.json walked on the way to it).
	InvalidateOnFileChange []string

	// InvalidateOnFileCreate lists glob patterns whose satisfaction
	// (a new matching file appearing) should invalidate the resolution.
	InvalidateOnFileCreate []string
}
