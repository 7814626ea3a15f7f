package entity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	t.Run("should start uncancelled with no reason", func(t *testing.T) {
		sig := NewSignal()

		assert.False(t, sig.Cancelled())
		assert.Nil(t, sig.Reason())

		select {
		case <-sig.Done():
			t.Fatal("done channel closed before cancel")
		default:
		}
	})

	t.Run("should cancel exactly once", func(t *testing.T) {
		sig := NewSignal()

		assert.True(t, sig.Cancel("first"))
		assert.False(t, sig.Cancel("second"))

		assert.True(t, sig.Cancelled())
		assert.Equal(t, "first", sig.Reason())
	})

	t.Run("should close the done channel on cancel", func(t *testing.T) {
		sig := NewSignal()

		sig.Cancel(nil)

		select {
		case <-sig.Done():
		default:
			t.Fatal("done channel still open after cancel")
		}
	})

	t.Run("should accept a nil reason", func(t *testing.T) {
		sig := NewSignal()

		assert.True(t, sig.Cancel(nil))
		assert.True(t, sig.Cancelled())
		assert.Nil(t, sig.Reason())
	})

	t.Run("should admit only one winner under concurrent cancels", func(t *testing.T) {
		sig := NewSignal()

		var wg sync.WaitGroup
		var mu sync.Mutex
		winners := 0

		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				if sig.Cancel(n) {
					mu.Lock()
					winners++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, winners)
		assert.True(t, sig.Cancelled())
		assert.NotNil(t, sig.Reason())
	})
}
