package modal

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"segurab-assistant/internal/domain"
)

// queueDispatcher collects dispatched functions; the test goroutine acts as
// the UI actor by draining them.
type queueDispatcher struct {
	mu    sync.Mutex
	queue []func()
}

func (q *queueDispatcher) Dispatch(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = append(q.queue, fn)
}

func (q *queueDispatcher) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

func (q *queueDispatcher) drain() {
	for {
		q.mu.Lock()
		if len(q.queue) == 0 {
			q.mu.Unlock()
			return
		}
		fn := q.queue[0]
		q.queue = q.queue[1:]
		q.mu.Unlock()
		fn()
	}
}

// waitAndDrain waits for an off-actor completion to be dispatched, then runs it.
func (q *queueDispatcher) waitAndDrain(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool { return q.pending() > 0 }, 2*time.Second, time.Millisecond)
	q.drain()
}

type fakeFrame struct {
	calls []string
}

func (f *fakeFrame) Reveal()  { f.calls = append(f.calls, "reveal") }
func (f *fakeFrame) Conceal() { f.calls = append(f.calls, "conceal") }
func (f *fakeFrame) SetTransition(visible bool) {
	f.calls = append(f.calls, fmt.Sprintf("transition:%t", visible))
}

type fakeTyping struct {
	chat *fakeChat
}

func (t *fakeTyping) Remove() {
	t.chat.events = append(t.chat.events, "typing-removed")
	t.chat.typing--
}

type fakeChat struct {
	input   string
	events  []string
	typing  int
	scrolls int
	focuses int
}

func (c *fakeChat) AppendBubble(msg domain.ChatMessage) {
	c.events = append(c.events, string(msg.Role)+":"+msg.Text)
}

func (c *fakeChat) AppendTyping() Removable {
	c.events = append(c.events, "typing")
	c.typing++
	return &fakeTyping{chat: c}
}

func (c *fakeChat) ScrollToBottom()    { c.scrolls++ }
func (c *fakeChat) InputValue() string { return c.input }
func (c *fakeChat) ClearInput()        { c.input = "" }
func (c *fakeChat) FocusInput()        { c.focuses++ }

// gatedSender blocks every Send until a response is released.
type gatedSender struct {
	calls    atomic.Int32
	received chan string
	release  chan domain.ChatResponse
}

func newGatedSender() *gatedSender {
	return &gatedSender{
		received: make(chan string, 8),
		release:  make(chan domain.ChatResponse),
	}
}

func (s *gatedSender) Send(_ context.Context, msg string) domain.ChatResponse {
	s.calls.Add(1)
	s.received <- msg
	return <-s.release
}

type funcSender func(ctx context.Context, msg string) domain.ChatResponse

func (f funcSender) Send(ctx context.Context, msg string) domain.ChatResponse {
	return f(ctx, msg)
}

type fakeTimers struct {
	delays []time.Duration
	fns    []func()
}

func (t *fakeTimers) afterFunc(d time.Duration, fn func()) {
	t.delays = append(t.delays, d)
	t.fns = append(t.fns, fn)
}

func (t *fakeTimers) fireAll() {
	fns := t.fns
	t.fns = nil
	for _, fn := range fns {
		fn()
	}
}
