// Package canonhash provides the single canonical, deterministic hashing
// primitive used where an invalidation hash or pipeline hash is computed
// (asset content hashes use sha256 directly), so the same logical input always produces the same
// digest regardless of machine or map/slice iteration order.
package canonhash

import (
	"encoding/hex"
	"sort"

	"github.com/mitchellh/hashstructure"
)

// Strings returns a deterministic hex digest of a set of strings,
// independent of the order they're supplied in. Used both for the
// invalidation hash over a dev-dependency's invalidateOnFileChange set and
// for a config's includedFiles hash.
func Strings(values []string) (string, error) {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)

	h, err := hashstructure.Hash(sorted, nil)
	if err != nil {
		return "", err
	}
	return encode(h), nil
}

// Object returns a deterministic hex digest of an arbitrary value via
// canonical (permutation-invariant) structural hashing. Map key order and
// slice-of-unordered-set order never affect the result for types that
// implement hashstructure's Hashable, but plain slices ARE order
// sensitive — callers that need order independence should sort first, as
// Strings does.
func Object(v interface{}) (string, error) {
	h, err := hashstructure.Hash(v, nil)
	if err != nil {
		return "", err
	}
	return encode(h), nil
}

func encode(h uint64) string {
	b := []byte{
		byte(h >> 56), byte(h >> 48), byte(h >> 40), byte(h >> 32),
		byte(h >> 24), byte(h >> 16), byte(h >> 8), byte(h),
	}
	return hex.EncodeToString(b)
}
