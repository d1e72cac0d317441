package fallback

import (
	"sync"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
)

// UsageCounter tracks how many times each topic's fallback has been served.
// It is an explicit, injectable store so callers (and tests) can hold
// isolated instances. Counts are in-memory only; losing them across process
// restarts is acceptable; this is a variety heuristic, not a correctness
// guarantee.
type UsageCounter struct {
	mu     sync.Mutex
	counts map[model.Topic]int
}

// NewUsageCounter creates an empty usage counter.
func NewUsageCounter() *UsageCounter {
	return &UsageCounter{counts: make(map[model.Topic]int)}
}

// Increment bumps the count for a topic and returns the new value.
func (u *UsageCounter) Increment(topic model.Topic) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.counts[topic]++
	return u.counts[topic]
}

// Count returns the current count for a topic.
func (u *UsageCounter) Count(topic model.Topic) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.counts[topic]
}

// Reset clears all counts.
func (u *UsageCounter) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.counts = make(map[model.Topic]int)
}
