// Package input carries pointer and viewport events from the renderer to the frame loop as command values.
// Producers push onto a Queue from any goroutine; the loop drains it once per tick and dispatches in order.
package input

import (
	"fmt"
	"sync"
)

// Kind identifies a command type for dispatch.
type Kind string

const (
	KindPointerMove Kind = "move"
	KindClick       Kind = "click"
	KindResize      Kind = "resize"
)

// Command is one input event.
type Command interface {
	Kind() Kind
}

// PointerMove is the pointer position in window pixels, origin top-left.
type PointerMove struct {
	X, Y float32
}

// Click is a primary-button press at window pixels.
type Click struct {
	X, Y float32
}

// Resize is a new viewport size in pixels.
type Resize struct {
	Width, Height int
}

func (PointerMove) Kind() Kind { return KindPointerMove }
func (Click) Kind() Kind       { return KindClick }
func (Resize) Kind() Kind      { return KindResize }

// Queue is a FIFO of commands safe for concurrent Push.
type Queue struct {
	mu    sync.Mutex
	items []Command
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(cmds ...Command) {
	q.mu.Lock()
	q.items = append(q.items, cmds...)
	q.mu.Unlock()
}

// Drain returns every queued command in push order and empties the queue.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Handler reacts to one command. Errors are returned to the caller of Dispatch.
type Handler func(Command) error

// Dispatcher routes commands to handlers by kind. Register handlers before dispatching.
type Dispatcher struct {
	handlers map[Kind]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Kind]Handler)}
}

// Register sets the handler for kind, replacing any previous one.
func (d *Dispatcher) Register(kind Kind, h Handler) {
	d.handlers[kind] = h
}

// Dispatch runs the handler registered for cmd's kind.
func (d *Dispatcher) Dispatch(cmd Command) error {
	h, ok := d.handlers[cmd.Kind()]
	if !ok {
		return fmt.Errorf("unhandled input command: %s", cmd.Kind())
	}
	return h(cmd)
}
