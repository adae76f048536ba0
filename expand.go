package handbook

// VisitedSet is the set of canonical keys reachable from a seed. It only
// grows, and remembers the order in which keys were discovered.
type VisitedSet struct {
	keys []string
	seen map[string]struct{}
}

// NewVisitedSet returns an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[string]struct{})}
}

// Add inserts key. Reports false if the key was already present.
func (v *VisitedSet) Add(key string) bool {
	if v.Has(key) {
		return false
	}
	v.seen[key] = struct{}{}
	v.keys = append(v.keys, key)
	return true
}

// Has reports whether key has been visited.
func (v *VisitedSet) Has(key string) bool {
	_, ok := v.seen[key]
	return ok
}

// Len returns the number of visited keys.
func (v *VisitedSet) Len() int {
	return len(v.keys)
}

// Keys returns the visited keys in discovery order.
func (v *VisitedSet) Keys() []string {
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// Expand computes the set of sections reachable from the seed labels by
// following cross-references breadth-first.
//
// Seed labels are normalized on enqueue; references extracted from section
// bodies are already canonical and are enqueued as-is. Keys that are already
// visited are skipped at dequeue, and keys that fail lookup (or resolve to an
// empty body) are dropped silently. Each distinct key is expanded at most
// once, so reference cycles terminate.
func Expand(lookup SectionLookup, seeds []string) *VisitedSet {
	queue := make([]string, 0, len(seeds))
	for _, label := range seeds {
		queue = append(queue, Normalize(label))
	}

	visited := NewVisitedSet()
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]

		if visited.Has(key) {
			continue
		}
		text, ok := lookup.Text(key)
		if !ok || text == "" {
			continue
		}
		visited.Add(key)

		queue = append(queue, ExtractReferences(text)...)
	}
	return visited
}
