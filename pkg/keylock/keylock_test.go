package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyLock_TryLock(t *testing.T) {
	l := New()

	unlock, ok := l.TryLock("appointment:1")
	require.True(t, ok)

	_, ok = l.TryLock("appointment:1")
	assert.False(t, ok, "second mutation of the same entity must be rejected")

	other, ok := l.TryLock("appointment:2")
	require.True(t, ok)
	other()

	unlock()
	unlock()

	again, ok := l.TryLock("appointment:1")
	require.True(t, ok)
	again()
}

func TestKeyLock_Concurrent(t *testing.T) {
	l := New()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
		release  []func()
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if unlock, ok := l.TryLock("week:7"); ok {
				mu.Lock()
				acquired++
				release = append(release, unlock)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, acquired)
	for _, unlock := range release {
		unlock()
	}
}
