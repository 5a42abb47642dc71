package render

import "sort"

// Registry maps unique ids to entities. Iteration is in ascending id order
// so that passes are deterministic from frame to frame.
type Registry[T any] struct {
	entries map[string]T
	order   []string
	dirty   bool
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}

// Put inserts v under id, replacing any previous entry.
func (r *Registry[T]) Put(id string, v T) {
	if _, ok := r.entries[id]; !ok {
		r.dirty = true
	}
	r.entries[id] = v
}

// Delete removes id and reports whether it was present.
func (r *Registry[T]) Delete(id string) bool {
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	r.dirty = true
	return true
}

func (r *Registry[T]) Get(id string) (T, bool) {
	v, ok := r.entries[id]
	return v, ok
}

func (r *Registry[T]) Len() int {
	return len(r.entries)
}

// IDs returns the registered ids in ascending order. The slice is shared
// and must not be modified; it stays valid across later Put and Delete calls.
func (r *Registry[T]) IDs() []string {
	if r.dirty || r.order == nil {
		order := make([]string, 0, len(r.entries))
		for id := range r.entries {
			order = append(order, id)
		}
		sort.Strings(order)
		r.order = order
		r.dirty = false
	}
	return r.order
}

// Each calls fn for every entry in id order.
func (r *Registry[T]) Each(fn func(id string, v T)) {
	for _, id := range r.IDs() {
		fn(id, r.entries[id])
	}
}
