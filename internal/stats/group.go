package stats

import "sort"

// groupMap is a string-keyed accumulator that remembers first-seen key order.
// Callers that expose ordered output still sort explicitly.
type groupMap[V any] struct {
	index map[string]int
	keys  []string
	vals  []V
}

func newGroupMap[V any]() *groupMap[V] {
	return &groupMap[V]{index: make(map[string]int)}
}

// merge folds one contribution into the group for key, creating it with init
// on first sight.
func (g *groupMap[V]) merge(key string, init func() V, fold func(*V)) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.vals)
		g.index[key] = i
		g.keys = append(g.keys, key)
		g.vals = append(g.vals, init())
	}
	fold(&g.vals[i])
}

func (g *groupMap[V]) len() int {
	return len(g.vals)
}

// values returns the groups in first-seen order.
func (g *groupMap[V]) values() []V {
	out := make([]V, len(g.vals))
	copy(out, g.vals)
	return out
}

// itemNames returns the union of item keys across reports, sorted.
func itemNames(reports []Report) []string {
	seen := make(map[string]struct{})
	for _, r := range reports {
		for name := range r.Items {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
