package types

// DefaultMap is a map wrapper that materializes missing keys with a
// user-provided default function, avoiding existence checks at call sites.
//
//	m := NewDefaultMap[string](func() int { return 0 })
//	count := m.Get("key") // 0 if "key" was absent
type DefaultMap[K comparable, V any] struct {
	data        map[K]V
	defaultFunc func() V
}

// NewDefaultMap creates a DefaultMap with the given default function.
func NewDefaultMap[K comparable, V any](defaultFunc func() V) DefaultMap[K, V] {
	return DefaultMap[K, V]{
		data:        make(map[K]V),
		defaultFunc: defaultFunc,
	}
}

// Get retrieves the value for key, inserting and returning the default
// value when the key is absent.
func (d *DefaultMap[K, V]) Get(key K) V {
	val, ok := d.data[key]
	if ok {
		return val
	}

	val = d.defaultFunc()
	d.data[key] = val
	return val
}

// Set assigns a value to the given key.
func (d *DefaultMap[K, V]) Set(key K, val V) {
	d.data[key] = val
}

// ToMap exposes the underlying map for iteration or bulk operations.
func (d *DefaultMap[K, V]) ToMap() map[K]V {
	return d.data
}
