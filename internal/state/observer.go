package state

// Event is a small multicast callback list. Function values are not
// comparable in Go, so listeners are tracked by the id handed back from
// AddListener and removed with it. Invocation order is registration order.
type Event[T any] struct {
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// AddListener registers fn and returns its id.
func (e *Event[T]) AddListener(fn func(T)) int {
	id := e.nextID
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: id, fn: fn})
	return id
}

// RemoveListener drops the listener with the given id. Unknown ids are
// ignored.
func (e *Event[T]) RemoveListener(id int) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Funcs returns a copy of the registered callbacks so the caller can
// invoke them without holding whatever lock guards the event.
func (e *Event[T]) Funcs() []func(T) {
	if len(e.listeners) == 0 {
		return nil
	}
	out := make([]func(T), len(e.listeners))
	for i, l := range e.listeners {
		out[i] = l.fn
	}
	return out
}

// Invoke calls every listener in registration order.
func (e *Event[T]) Invoke(arg T) {
	for _, fn := range e.Funcs() {
		fn(arg)
	}
}

// Len returns the number of registered listeners.
func (e *Event[T]) Len() int {
	return len(e.listeners)
}
