// Package dedup tracks which item identifiers have already been notified
// upon, so repeated check cycles stay quiet about the same post. The set is
// bounded: once over capacity the oldest inserted keys are dropped.
package dedup

import "sync"

// DefaultCap is the number of keys retained across runs.
const DefaultCap = 1000

// Namespace partitions the key space so independent tracking concerns never
// collide on the same raw identifier.
type Namespace string

const (
	// NamespaceAlert is the keyword-alert namespace; keys are bare IDs for
	// compatibility with previously persisted seen files.
	NamespaceAlert Namespace = ""
	// NamespaceCompetitor prefixes competitor-mention keys.
	NamespaceCompetitor Namespace = "comp"
)

// Key is a namespaced item identifier.
type Key struct {
	Namespace Namespace
	ID        string
}

// AlertKey builds a keyword-alert key.
func AlertKey(id string) Key { return Key{Namespace: NamespaceAlert, ID: id} }

// CompetitorKey builds a competitor-mention key.
func CompetitorKey(id string) Key {
	return Key{Namespace: NamespaceCompetitor, ID: id}
}

// String renders the persisted form: bare ID for the alert namespace,
// "<ns>:<id>" otherwise.
func (k Key) String() string {
	if k.Namespace == NamespaceAlert {
		return k.ID
	}
	return string(k.Namespace) + ":" + k.ID
}

// SeenSet is a bounded, insertion-ordered set of seen keys. Safe for
// concurrent use; the alert and competitor check paths mark into the same set
// so the final persist is a single consistent write.
type SeenSet struct {
	mu       sync.Mutex
	capacity int
	order    []string
	index    map[string]struct{}
}

// New creates an empty SeenSet. capacity <= 0 means DefaultCap.
func New(capacity int) *SeenSet {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &SeenSet{capacity: capacity, index: make(map[string]struct{})}
}

// FromKeys restores a SeenSet from its persisted key list, oldest first.
func FromKeys(keys []string, capacity int) *SeenSet {
	s := New(capacity)
	for _, k := range keys {
		s.mark(k)
	}
	return s
}

// Has reports whether k was already seen.
func (s *SeenSet) Has(k Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[k.String()]
	return ok
}

// Mark records k as seen. Returns true when k is new. Marking an existing key
// does not promote it; eviction order is insertion order, not access order.
func (s *SeenSet) Mark(k Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mark(k.String())
}

func (s *SeenSet) mark(raw string) bool {
	if _, ok := s.index[raw]; ok {
		return false
	}
	s.index[raw] = struct{}{}
	s.order = append(s.order, raw)
	// Evict oldest immediately so lookups never see over-cap keys.
	if over := len(s.order) - s.capacity; over > 0 {
		for _, k := range s.order[:over] {
			delete(s.index, k)
		}
		s.order = append([]string(nil), s.order[over:]...)
	}
	return true
}

// Len returns the current number of keys before truncation.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Snapshot returns the keys to persist: at most capacity keys, oldest first.
func (s *SeenSet) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
