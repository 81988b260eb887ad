package combobox

import "slices"

// registry is the container's record of live options: display order for
// navigation plus a value index for value-driven selection.
//
// Several live options may share a value while a host swaps one list for
// another, so the index keeps a bucket per value in registration order.
// Every option in order appears exactly once in the bucket of the value it
// registered with.
type registry[T any] struct {
	order   []*Option[T]
	byValue map[string][]*Option[T]
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{byValue: make(map[string][]*Option[T])}
}

func (r *registry[T]) add(o *Option[T]) {
	o.key = o.Value()
	r.order = append(r.order, o)
	r.byValue[o.key] = append(r.byValue[o.key], o)
}

// remove reports whether o was registered.
func (r *registry[T]) remove(o *Option[T]) bool {
	i := r.indexOf(o)
	if i < 0 {
		return false
	}
	r.order = slices.Delete(r.order, i, i+1)

	bucket := r.byValue[o.key]
	if j := slices.Index(bucket, o); j >= 0 {
		bucket = slices.Delete(bucket, j, j+1)
	}
	if len(bucket) == 0 {
		delete(r.byValue, o.key)
	} else {
		r.byValue[o.key] = bucket
	}
	return true
}

func (r *registry[T]) indexOf(o *Option[T]) int {
	if o == nil {
		return -1
	}
	return slices.Index(r.order, o)
}

func (r *registry[T]) contains(o *Option[T]) bool {
	return r.indexOf(o) >= 0
}

func (r *registry[T]) at(i int) *Option[T] {
	if i < 0 || i >= len(r.order) {
		return nil
	}
	return r.order[i]
}

// lookup returns the most recently registered option with value, or nil.
func (r *registry[T]) lookup(value string) *Option[T] {
	bucket := r.byValue[value]
	if len(bucket) == 0 {
		return nil
	}
	return bucket[len(bucket)-1]
}

func (r *registry[T]) len() int {
	return len(r.order)
}

func (r *registry[T]) clear() {
	r.order = nil
	r.byValue = make(map[string][]*Option[T])
}
