package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	t.Run("new set with initial elements", func(t *testing.T) {
		set := NewSet("a", "b", "a")

		assert.Len(t, set, 2)
		assert.True(t, set.Has("a"))
		assert.True(t, set.Has("b"))
		assert.False(t, set.Has("c"))
	})

	t.Run("add and delete", func(t *testing.T) {
		set := NewSet[string]()
		set.Add("x", "y")
		set.Delete("x")

		assert.False(t, set.Has("x"))
		assert.True(t, set.Has("y"))
	})

	t.Run("to slice", func(t *testing.T) {
		set := NewSet(1, 2, 3)
		assert.ElementsMatch(t, []int{1, 2, 3}, set.ToSlice())
	})
}
