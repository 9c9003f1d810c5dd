package worker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluginHashRoundTrip(t *testing.T) {
	s := NewBuildScope()

	_, ok := s.PluginHash("T1:./node_modules/T1")
	assert.False(t, ok)

	s.SetPluginHash("T1:./node_modules/T1", "deadbeef")
	h, ok := s.PluginHash("T1:./node_modules/T1")
	assert.True(t, ok)
	assert.Equal(t, "deadbeef", h)
}

func TestMarkInvalidatedOnlyOnce(t *testing.T) {
	s := NewBuildScope()

	assert.True(t, s.MarkInvalidated("T1:./node_modules/T1"))
	assert.False(t, s.MarkInvalidated("T1:./node_modules/T1"))
	assert.True(t, s.MarkInvalidated("T2:./node_modules/T2"))
}

func TestBuildScopeConcurrentUse(t *testing.T) {
	s := NewBuildScope()
	var wg sync.WaitGroup
	firstCount := 0
	var mu sync.Mutex

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.MarkInvalidated("shared-key") {
				mu.Lock()
				firstCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, firstCount)
}
