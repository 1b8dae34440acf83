package bragi

import (
	"bytes"
	"fmt"
	"sync"
)

// Registry routes encoded messages to their Go type by MESSAGE_ID.
// Registration is expected at start-up; lookups are safe from any goroutine.
type Registry struct {
	mu    sync.RWMutex
	types map[uint32]func() Message
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[uint32]func() Message)}
}

// Register adds a constructor for messages of its id. Two types sharing an
// id cannot be routed and are rejected.
func (r *Registry) Register(newMessage func() Message) error {
	id := newMessage().MessageID()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[id]; exists {
		return fmt.Errorf("bragi: message id %d already registered", id)
	}
	r.types[id] = newMessage
	return nil
}

// Lookup returns a fresh zero-valued message for id.
func (r *Registry) Lookup(id uint32) (Message, bool) {
	r.mu.RLock()
	newMessage, ok := r.types[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return newMessage(), true
}

// IDs returns the registered ids in no particular order.
func (r *Registry) IDs() []uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]uint32, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	return ids
}

// Decode peeks the preamble of head, picks the registered type and decodes
// head and tail into it. tail may be nil when the preamble announces no
// tail.
func (r *Registry) Decode(head, tail []byte) (Message, error) {
	p, err := PreambleFromBytes(head)
	if err != nil {
		return nil, err
	}
	msg, ok := r.Lookup(p.ID())
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMessage, p.ID())
	}
	if uint64(len(tail)) < uint64(p.TailSize()) {
		return nil, ErrTruncated
	}
	if err := msg.DecodeHead(bytes.NewReader(head)); err != nil {
		return nil, err
	}
	if err := msg.DecodeTail(bytes.NewReader(tail[:p.TailSize()])); err != nil {
		return nil, err
	}
	return msg, nil
}
