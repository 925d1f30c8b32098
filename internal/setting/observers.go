package setting

// Observers is an ordered list of callbacks.
//
// Notify delivers to subscribers in the order they subscribed. A callback
// that unsubscribes itself (or another subscriber) during delivery does not
// affect the current round.
//
// Not safe for concurrent use.
type Observers[T any] struct {
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Add subscribes fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (o *Observers[T]) Add(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every subscriber with v.
func (o *Observers[T]) Notify(v T) {
	snapshot := make([]subscriber[T], len(o.subs))
	copy(snapshot, o.subs)
	for _, s := range snapshot {
		s.fn(v)
	}
}

// Len returns the number of current subscribers.
func (o *Observers[T]) Len() int {
	return len(o.subs)
}
