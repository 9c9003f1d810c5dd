// Package devdep accounts for the dev-dependencies a transformer declares
// during config loading, short-circuiting the bookkeeping when a prior
// build's hash is still valid and otherwise recording exactly what must
// invalidate the transformer's cached config.
package devdep

import (
	"github.com/glitchwizard/tcore/internal/canonhash"
	"github.com/glitchwizard/tcore/internal/invalidation"
	"github.com/glitchwizard/tcore/internal/resolver"
)

// AdditionalInvalidation points a dev-dep's change back at the
// transformer that declared it, so a later change to the dep also
// invalidates that transformer's own cached pipeline hash.
type AdditionalInvalidation struct {
	Specifier   string
	ResolveFrom string
	Hash        string
}

// Record is one accounted dev-dependency. When Hash alone is populated
// (no InvalidateOnFileChange/Create), the record is a stripped
// short-circuit record: the caller already knew this dep's hash and no
// further invalidation bookkeeping was necessary.
type Record struct {
	Specifier               string
	ResolveFrom             string
	Hash                    string
	InvalidateOnFileChange  []string
	InvalidateOnFileCreate  []string
	AdditionalInvalidations []AdditionalInvalidation
}

// Ledger accounts for every dev-dependency declared across one
// transformation, deduplicating by (specifier, resolveFrom) and
// short-circuiting against hashes the request already supplied.
type Ledger struct {
	pm resolver.PackageManager

	// knownHashes holds hashes the request already knew about, keyed by
	// "specifier:resolveFromRelative" — supplying one of these skips
	// resolution and invalidation bookkeeping entirely.
	knownHashes map[string]string

	recorded map[string]struct{}
	records  []Record
}

// NewLedger returns a Ledger backed by pm, pre-seeded with any dev-dep
// hashes the caller's request already supplied.
func NewLedger(pm resolver.PackageManager, knownHashes map[string]string) *Ledger {
	if knownHashes == nil {
		knownHashes = make(map[string]string)
	}
	return &Ledger{
		pm:          pm,
		knownHashes: knownHashes,
		recorded:    make(map[string]struct{}),
	}
}

// Key builds the canonical identity for a (specifier, resolveFrom) pair,
// shared by the Ledger and by callers that need to pre-populate known
// hashes or invalidated identifiers using the same identity.
func Key(specifier, resolveFromRelative string) string {
	return specifier + ":" + resolveFromRelative
}

func key(specifier, resolveFromRelative string) string {
	return Key(specifier, resolveFromRelative)
}

// Add registers one dev-dependency declaration. resolveFromRelative is the
// project-relative path used for the dedup key; resolveFromAbsolute is
// what's handed to the package manager. If invalidateTransformer is true
// and the dep resolves fully (not short-circuited), the record carries an
// AdditionalInvalidations entry pointing back at transformerName.
//
// A repeated call for the same (specifier, resolveFromRelative) is a
// no-op, matching a build where the same transformer declares the same
// dep more than once.
func (l *Ledger) Add(specifier, resolveFromRelative, resolveFromAbsolute string, invalidateTransformer bool, transformerName string) error {
	k := key(specifier, resolveFromRelative)
	if _, ok := l.recorded[k]; ok {
		return nil
	}
	l.recorded[k] = struct{}{}

	if hash, ok := l.knownHashes[k]; ok {
		l.records = append(l.records, Record{
			Specifier:   specifier,
			ResolveFrom: resolveFromRelative,
			Hash:        hash,
		})
		return nil
	}

	if _, err := l.pm.Resolve(specifier, resolveFromAbsolute); err != nil {
		return err
	}
	inv := l.pm.GetInvalidations(specifier, resolveFromAbsolute)

	hash, err := canonhash.Strings(inv.InvalidateOnFileChange)
	if err != nil {
		return err
	}

	rec := Record{
		Specifier:              specifier,
		ResolveFrom:            resolveFromRelative,
		Hash:                   hash,
		InvalidateOnFileChange: inv.InvalidateOnFileChange,
		InvalidateOnFileCreate: inv.InvalidateOnFileCreate,
	}
	if invalidateTransformer {
		rec.AdditionalInvalidations = []AdditionalInvalidation{{
			Specifier:   specifier,
			ResolveFrom: resolveFromRelative,
			Hash:        hash,
		}}
	}
	l.records = append(l.records, rec)
	return nil
}

// Hash returns the recorded hash for (specifier, resolveFromRelative),
// used when a pipeline hash needs a transformer's own dev-dep hash and
// the request didn't already supply one. Returns ok=false if the
// specifier was never registered.
func (l *Ledger) Hash(specifier, resolveFromRelative string) (string, bool) {
	k := key(specifier, resolveFromRelative)
	if _, seen := l.recorded[k]; !seen {
		return "", false
	}
	for _, r := range l.records {
		if r.Specifier == specifier && r.ResolveFrom == resolveFromRelative {
			return r.Hash, true
		}
	}
	return "", false
}

// Records returns every accounted dev-dependency, in registration order.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// ApplyInvalidations folds every record's file/create invalidations into
// tr, so they surface in the transformation's overall invalidation result.
func (l *Ledger) ApplyInvalidations(tr *invalidation.Tracker) {
	for _, r := range l.records {
		for _, f := range r.InvalidateOnFileChange {
			tr.AddFile(f)
		}
		for _, pattern := range r.InvalidateOnFileCreate {
			tr.AddCreate(pattern, r.ResolveFrom)
		}
	}
}
