package event

// Handler receives the arguments bound at Accept time
type Handler func(args ...any)

type binding struct {
	handler Handler
	args    []any
}

// Bus dispatches named input events to at most one handler per name
// Dispatch is synchronous on the caller goroutine, no locking
type Bus struct {
	bindings map[string]binding
	sent     uint64
	dropped  uint64
}

func NewBus() *Bus {
	return &Bus{bindings: make(map[string]binding)}
}

// Accept binds handler to name, replacing any previous binding
func (b *Bus) Accept(name string, handler Handler, args ...any) {
	b.bindings[name] = binding{handler: handler, args: args}
}

// Ignore removes the binding for name
func (b *Bus) Ignore(name string) {
	delete(b.bindings, name)
}

// IsAccepting reports whether name has a handler
func (b *Bus) IsAccepting(name string) bool {
	_, ok := b.bindings[name]
	return ok
}

// Send invokes the handler bound to name, returns false if nothing is bound
func (b *Bus) Send(name string) bool {
	bnd, ok := b.bindings[name]
	if !ok {
		b.dropped++
		return false
	}
	b.sent++
	bnd.handler(bnd.args...)
	return true
}

// Stats returns delivered and unbound event counts
func (b *Bus) Stats() (sent, dropped uint64) {
	return b.sent, b.dropped
}
