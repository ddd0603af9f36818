package recycler

// Handler receives an event payload.
type Handler[T any] func(T)

// handlerEntry holds a registered handler with its subscription id.
type handlerEntry[T any] struct {
	id      uint64
	handler Handler[T]
}

// Event is a typed list of handlers. Handlers run synchronously, in
// subscription order, on the goroutine calling Emit.
//
// Usage:
//
//	unsubscribe := r.OnInitialized.Subscribe(func(r *recycler.Recycler) {
//	    fmt.Println("pool ready:", r.PoolSize())
//	})
//	defer unsubscribe()
type Event[T any] struct {
	handlers []handlerEntry[T]
	nextID   uint64
}

// Subscribe registers h and returns a function that removes it.
func (e *Event[T]) Subscribe(h Handler[T]) (unsubscribe func()) {
	if h == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, handlerEntry[T]{id: id, handler: h})
	return func() { e.remove(id) }
}

// Emit calls every handler with v. Handlers added or removed during Emit
// take effect on the next call.
func (e *Event[T]) Emit(v T) {
	handlers := e.handlers
	for _, entry := range handlers {
		entry.handler(v)
	}
}

// Len returns the number of subscribed handlers.
func (e *Event[T]) Len() int { return len(e.handlers) }

// Clear removes every handler.
func (e *Event[T]) Clear() { e.handlers = nil }

func (e *Event[T]) remove(id uint64) {
	for i, entry := range e.handlers {
		if entry.id == id {
			// Copy so an Emit in progress keeps its snapshot.
			next := make([]handlerEntry[T], 0, len(e.handlers)-1)
			next = append(next, e.handlers[:i]...)
			e.handlers = append(next, e.handlers[i+1:]...)
			return
		}
	}
}
