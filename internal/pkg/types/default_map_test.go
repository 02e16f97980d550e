package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMap(t *testing.T) {
	t.Run("materializes missing keys with the default", func(t *testing.T) {
		m := NewDefaultMap[string](func() int { return 42 })

		assert.Equal(t, 42, m.Get("missing"))
	})

	t.Run("set overrides the default", func(t *testing.T) {
		m := NewDefaultMap[string](func() int { return 0 })

		m.Set("key", 7)
		assert.Equal(t, 7, m.Get("key"))
	})

	t.Run("get inserts the materialized default", func(t *testing.T) {
		m := NewDefaultMap[string](func() []string { return nil })

		m.Set("key", append(m.Get("key"), "a"))
		m.Set("key", append(m.Get("key"), "b"))

		assert.Equal(t, []string{"a", "b"}, m.Get("key"))
		assert.Len(t, m.ToMap(), 1)
	})
}
