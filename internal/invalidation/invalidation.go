// Package invalidation tracks the fine-grained invalidation records a
// transformation accumulates so an upstream incremental build graph can
// re-run precisely the affected work.
package invalidation

import "sort"

// Kind identifies the category of an invalidation record.
type Kind string

const (
	// KindFile invalidates when the named file's content changes.
	KindFile Kind = "file"

	// KindOption invalidates when a named option's value changes between builds.
	KindOption Kind = "option"

	// KindCreate invalidates when a file matching Pattern is created.
	KindCreate Kind = "create"
)

// Invalidation is a single record telling the outer graph when to re-run
// this transformation.
type Invalidation struct {
	Kind Kind `json:"kind"`

	// FilePath is set for KindFile: the project-relative path read.
	FilePath string `json:"filePath,omitempty"`

	// Option is set for KindOption: the option key accessed.
	Option string `json:"option,omitempty"`

	// Pattern is set for KindCreate: a glob describing files whose
	// creation should invalidate this transformation.
	Pattern string `json:"pattern,omitempty"`

	// AboveFilePath, if set for KindCreate, scopes the create-pattern
	// search to ancestors of this path (mirrors a directory-scoped glob).
	AboveFilePath string `json:"aboveFilePath,omitempty"`
}

// id returns the canonical identity used to deduplicate invalidations that
// describe the same underlying condition.
func (inv Invalidation) id() string {
	switch inv.Kind {
	case KindFile:
		return "file:" + inv.FilePath
	case KindOption:
		return "option:" + inv.Option
	case KindCreate:
		return "create:" + inv.Pattern + ":" + inv.AboveFilePath
	default:
		return string(inv.Kind)
	}
}

// Tracker accumulates invalidations for a single transformation and
// deduplicates them by canonical identity.
//
// A transformation owns exactly one Tracker, shared by reference with
// every uncommitted asset and plugin runtime adapter it creates, so a file
// read recorded while resolving one transformer's import is visible to
// every later step of the same transformation.
type Tracker struct {
	seen  map[string]struct{}
	items []Invalidation
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

// AddFile records a file-read invalidation.
func (t *Tracker) AddFile(path string) {
	t.add(Invalidation{Kind: KindFile, FilePath: path})
}

// AddOption records an option-access invalidation.
func (t *Tracker) AddOption(key string) {
	t.add(Invalidation{Kind: KindOption, Option: key})
}

// AddCreate records a file-creation-pattern invalidation.
func (t *Tracker) AddCreate(pattern, aboveFilePath string) {
	t.add(Invalidation{Kind: KindCreate, Pattern: pattern, AboveFilePath: aboveFilePath})
}

func (t *Tracker) add(inv Invalidation) {
	id := inv.id()
	if _, ok := t.seen[id]; ok {
		return
	}
	t.seen[id] = struct{}{}
	t.items = append(t.items, inv)
}

// Merge folds another Tracker's records into this one, deduplicating by
// the same canonical identity.
func (t *Tracker) Merge(other *Tracker) {
	if other == nil {
		return
	}
	for _, inv := range other.items {
		t.add(inv)
	}
}

// All returns every accumulated invalidation. The slice is a defensive
// copy; only dedup-by-identity is guaranteed, not insertion order, so
// callers that need a stable order (e.g. for a cache key) should sort
// the result themselves.
func (t *Tracker) All() []Invalidation {
	out := make([]Invalidation, len(t.items))
	copy(out, t.items)
	return out
}

// FileInvalidations returns only the KindFile records, sorted by path.
// This is the list a transformation reports as Result.FileInvalidations.
func (t *Tracker) FileInvalidations() []string {
	var files []string
	for _, inv := range t.items {
		if inv.Kind == KindFile {
			files = append(files, inv.FilePath)
		}
	}
	sort.Strings(files)
	return files
}

// OptionInvalidations returns only the KindOption records' keys, sorted.
func (t *Tracker) OptionInvalidations() []string {
	var options []string
	for _, inv := range t.items {
		if inv.Kind == KindOption {
			options = append(options, inv.Option)
		}
	}
	sort.Strings(options)
	return options
}

// CreateInvalidations returns only the KindCreate records.
func (t *Tracker) CreateInvalidations() []Invalidation {
	var creates []Invalidation
	for _, inv := range t.items {
		if inv.Kind == KindCreate {
			creates = append(creates, inv)
		}
	}
	return creates
}

// Len reports how many distinct invalidations have been recorded.
func (t *Tracker) Len() int {
	return len(t.items)
}
