package rwguard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRWGuardExclusive(t *testing.T) {
	guard := New(0)

	acc := guard.Lock()
	*acc.Ref() = 42
	acc.Unlock()

	r := guard.RLock()
	require.Equal(t, 42, *r.Ref())
	r.Unlock()
}

func TestRWGuardConcurrentReaders(t *testing.T) {
	guard := New([]int{1, 2, 3})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := guard.RLock()
			require.Len(t, *r.Ref(), 3)
			r.Unlock()
		}()
	}
	wg.Wait()
}

func TestAccessorPanicsAfterUnlock(t *testing.T) {
	guard := New("x")
	acc := guard.Lock()
	acc.Unlock()

	require.Panics(t, func() { acc.Ref() })
}
