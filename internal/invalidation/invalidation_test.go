package invalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerDedupesByIdentity(t *testing.T) {
	tr := NewTracker()

	tr.AddFile("/proj/src/a.ts")
	tr.AddFile("/proj/src/a.ts")
	tr.AddOption("mode")
	tr.AddOption("mode")
	tr.AddCreate("**/*.css", "/proj/src")
	tr.AddCreate("**/*.css", "/proj/src")

	assert.Equal(t, 3, tr.Len())
}

func TestTrackerDistinguishesKinds(t *testing.T) {
	tr := NewTracker()

	tr.AddFile("config")
	tr.AddOption("config")

	assert.Equal(t, 2, tr.Len())
}

func TestTrackerMerge(t *testing.T) {
	a := NewTracker()
	a.AddFile("x.ts")

	b := NewTracker()
	b.AddFile("x.ts")
	b.AddFile("y.ts")

	a.Merge(b)

	assert.Equal(t, 2, a.Len())
	assert.ElementsMatch(t, []string{"x.ts", "y.ts"}, a.FileInvalidations())
}

func TestTrackerMergeNil(t *testing.T) {
	a := NewTracker()
	a.AddFile("x.ts")
	a.Merge(nil)
	assert.Equal(t, 1, a.Len())
}

func TestFileInvalidationsSorted(t *testing.T) {
	tr := NewTracker()
	tr.AddFile("z.ts")
	tr.AddFile("a.ts")
	tr.AddFile("m.ts")

	assert.Equal(t, []string{"a.ts", "m.ts", "z.ts"}, tr.FileInvalidations())
}

func TestCreateInvalidations(t *testing.T) {
	tr := NewTracker()
	tr.AddFile("x.ts")
	tr.AddCreate("**/*.module.css", "/proj/src/x.ts")

	creates := tr.CreateInvalidations()
	assert.Len(t, creates, 1)
	assert.Equal(t, "**/*.module.css", creates[0].Pattern)
	assert.Equal(t, "/proj/src/x.ts", creates[0].AboveFilePath)
}

func TestOptionInvalidationsSorted(t *testing.T) {
	tr := NewTracker()
	tr.AddOption("mode")
	tr.AddOption("engines")
	tr.AddFile("x.ts")

	assert.Equal(t, []string{"engines", "mode"}, tr.OptionInvalidations())
}

func TestAllIsDefensiveCopy(t *testing.T) {
	tr := NewTracker()
	tr.AddFile("x.ts")

	all := tr.All()
	all[0].FilePath = "mutated.ts"

	assert.Equal(t, "x.ts", tr.All()[0].FilePath)
}
