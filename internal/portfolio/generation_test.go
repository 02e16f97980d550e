package portfolio

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationTracker(t *testing.T) {
	t.Run("issues monotonically increasing generations per key", func(t *testing.T) {
		tracker := newGenerationTracker()

		first := tracker.Next("0xaaa")
		second := tracker.Next("0xaaa")
		other := tracker.Next("0xbbb")

		assert.Equal(t, uint64(1), first)
		assert.Equal(t, uint64(2), second)
		assert.Equal(t, uint64(1), other)
	})

	t.Run("only the newest generation is latest", func(t *testing.T) {
		tracker := newGenerationTracker()

		first := tracker.Next("0xaaa")
		assert.True(t, tracker.IsLatest("0xaaa", first))

		second := tracker.Next("0xaaa")
		assert.False(t, tracker.IsLatest("0xaaa", first))
		assert.True(t, tracker.IsLatest("0xaaa", second))
	})

	t.Run("keys are independent", func(t *testing.T) {
		tracker := newGenerationTracker()

		a := tracker.Next("0xaaa")
		tracker.Next("0xbbb")

		assert.True(t, tracker.IsLatest("0xaaa", a))
	})

	t.Run("concurrent issuance never repeats a generation", func(t *testing.T) {
		tracker := newGenerationTracker()

		const workers = 50

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = make(map[uint64]bool, workers)
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()

				gen := tracker.Next("0xaaa")

				mu.Lock()
				defer mu.Unlock()
				assert.False(t, seen[gen])
				seen[gen] = true
			}()
		}
		wg.Wait()

		assert.Len(t, seen, workers)
	})
}
