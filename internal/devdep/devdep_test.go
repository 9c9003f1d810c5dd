package devdep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glitchwizard/tcore/internal/invalidation"
	"github.com/glitchwizard/tcore/internal/resolver"
)

type fakePM struct {
	resolveCalls int
	invs         resolver.Invalidations
}

func (f *fakePM) Resolve(specifier, resolveFrom string) (string, error) {
	f.resolveCalls++
	return "/node_modules/" + specifier, nil
}

func (f *fakePM) Invalidate(specifier, resolveFrom string) {}

func (f *fakePM) GetInvalidations(specifier, resolveFrom string) resolver.Invalidations {
	return f.invs
}

func TestAddShortCircuitsOnKnownHash(t *testing.T) {
	pm := &fakePM{}
	ledger := NewLedger(pm, map[string]string{"lodash:src/a.ts": "abc123"})

	err := ledger.Add("lodash", "src/a.ts", "/proj/src/a.ts", false, "T1")
	require.NoError(t, err)

	assert.Zero(t, pm.resolveCalls)

	records := ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "abc123", records[0].Hash)
	assert.Empty(t, records[0].InvalidateOnFileChange)
}

func TestAddResolvesFullRecordWhenHashUnknown(t *testing.T) {
	pm := &fakePM{invs: resolver.Invalidations{
		InvalidateOnFileChange: []string{"/node_modules/lodash/package.json"},
	}}
	ledger := NewLedger(pm, nil)

	err := ledger.Add("lodash", "src/a.ts", "/proj/src/a.ts", true, "T1")
	require.NoError(t, err)
	assert.Equal(t, 1, pm.resolveCalls)

	records := ledger.Records()
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].Hash)
	assert.Equal(t, []string{"/node_modules/lodash/package.json"}, records[0].InvalidateOnFileChange)
	require.Len(t, records[0].AdditionalInvalidations, 1)
	assert.Equal(t, records[0].Hash, records[0].AdditionalInvalidations[0].Hash)
}

func TestAddDedupesBySpecifierAndResolveFrom(t *testing.T) {
	pm := &fakePM{}
	ledger := NewLedger(pm, nil)

	require.NoError(t, ledger.Add("lodash", "src/a.ts", "/proj/src/a.ts", false, "T1"))
	require.NoError(t, ledger.Add("lodash", "src/a.ts", "/proj/src/a.ts", false, "T1"))

	assert.Equal(t, 1, pm.resolveCalls)
	assert.Len(t, ledger.Records(), 1)
}

func TestHashLookup(t *testing.T) {
	pm := &fakePM{}
	ledger := NewLedger(pm, map[string]string{"lodash:src/a.ts": "abc123"})
	require.NoError(t, ledger.Add("lodash", "src/a.ts", "/proj/src/a.ts", false, "T1"))

	hash, ok := ledger.Hash("lodash", "src/a.ts")
	assert.True(t, ok)
	assert.Equal(t, "abc123", hash)

	_, ok = ledger.Hash("unknown", "x")
	assert.False(t, ok)
}

func TestApplyInvalidationsFoldsIntoTracker(t *testing.T) {
	pm := &fakePM{invs: resolver.Invalidations{
		InvalidateOnFileChange: []string{"/node_modules/lodash/package.json"},
		InvalidateOnFileCreate: []string{"**/node_modules/lodash/package.json"},
	}}
	ledger := NewLedger(pm, nil)
	require.NoError(t, ledger.Add("lodash", "src/a.ts", "/proj/src/a.ts", false, "T1"))

	tr := invalidation.NewTracker()
	ledger.ApplyInvalidations(tr)

	assert.Equal(t, []string{"/node_modules/lodash/package.json"}, tr.FileInvalidations())
	assert.Len(t, tr.CreateInvalidations(), 1)
}
