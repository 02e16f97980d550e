package portfolio

import "sync"

// generationTracker hands out monotonically increasing generation numbers
// per query key and answers whether a given generation is still the
// latest. It replaces implicit closure-captured staleness checks: every
// fetch carries its generation, and a result is applied only when its
// generation still equals the newest one issued for that key.
type generationTracker struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func newGenerationTracker() *generationTracker {
	return &generationTracker{
		latest: make(map[string]uint64),
	}
}

// Next issues the next generation for the key and records it as latest.
func (g *generationTracker) Next(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.latest[key]++
	return g.latest[key]
}

// IsLatest reports whether gen is still the newest generation issued for
// the key.
func (g *generationTracker) IsLatest(key string, gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.latest[key] == gen
}
