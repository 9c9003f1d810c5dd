package pluginconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glitchwizard/tcore/internal/invalidation"
)

func TestConfigIsEmpty(t *testing.T) {
	assert.True(t, Config{}.IsEmpty())
	assert.False(t, Config{IncludedFiles: []string{"a"}}.IsEmpty())
	assert.False(t, Config{CreateInvalidationPatterns: []string{"*.css"}}.IsEmpty())
	assert.False(t, Config{ShouldInvalidateOnStartup: true}.IsEmpty())
}

func TestFacadeAddIncludedFileRecordsInvalidation(t *testing.T) {
	cfg := &Config{}
	tr := invalidation.NewTracker()
	f := NewFacade(cfg, tr)

	f.AddIncludedFile("package.json")

	assert.Equal(t, []string{"package.json"}, cfg.IncludedFiles)
	assert.Equal(t, []string{"package.json"}, tr.FileInvalidations())
}

func TestFacadeSetResultHash(t *testing.T) {
	cfg := &Config{}
	f := NewFacade(cfg, invalidation.NewTracker())
	f.SetResultHash("abc")
	assert.Equal(t, "abc", cfg.ResultHash)
}

func TestFacadeAddDevDep(t *testing.T) {
	cfg := &Config{}
	f := NewFacade(cfg, invalidation.NewTracker())
	f.AddDevDep("lodash", "src/a.ts", true)

	assert.Equal(t, []DevDepDeclaration{{Specifier: "lodash", ResolveFrom: "src/a.ts", InvalidateParcelPlugin: true}}, cfg.DevDeps)
}

func TestOptionsGetRecordsInvalidation(t *testing.T) {
	tr := invalidation.NewTracker()
	opts := NewOptions(map[string]interface{}{"mode": "production"}, tr)

	v, ok := opts.Get("mode")
	assert.True(t, ok)
	assert.Equal(t, "production", v)
	assert.Contains(t, tr.All(), invalidation.Invalidation{Kind: invalidation.KindOption, Option: "mode"})
}
