package fx

import "sync"

// ResizeHub fans host resize notifications out to registered handlers.
type ResizeHub struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func()
}

func NewResizeHub() *ResizeHub {
	return &ResizeHub{handlers: make(map[int]func())}
}

// OnResize registers fn and returns a function that unregisters it.
func (h *ResizeHub) OnResize(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	h.handlers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.handlers, id)
			h.mu.Unlock()
		})
	}
}

// Notify calls every registered handler.
func (h *ResizeHub) Notify() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.handlers))
	for _, fn := range h.handlers {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of registered handlers.
func (h *ResizeHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handlers)
}
