package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// flushMsg asks Update to run the functions queued by the dispatcher.
type flushMsg struct{}

// dispatcher queues work for the Bubble Tea event loop. Dispatch may be
// called from Update itself, so it must never block on the program.
type dispatcher struct {
	mu      sync.Mutex
	queue   []func()
	program *tea.Program
}

func (d *dispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	program := d.program
	d.mu.Unlock()

	if program != nil {
		go program.Send(flushMsg{})
	}
}

func (d *dispatcher) bind(p *tea.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.program = p
}

func (d *dispatcher) pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// flush runs the functions queued so far, in order. Work they queue waits for
// the next flush.
func (d *dispatcher) flush() {
	d.mu.Lock()
	queue := d.queue
	d.queue = nil
	d.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
}
