// Package modal drives the assistant chat modal: visibility, the transcript
// and the single in-flight send.
package modal

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"segurab-assistant/internal/domain"
)

// HideDelay matches the modal's closing transition.
const HideDelay = 300 * time.Millisecond

const unexpectedErrorText = "Error inesperado. Intenta de nuevo."

// ErrMissingElements is returned when the host has no modal to drive.
var ErrMissingElements = errors.New("modal: required elements not found")

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Trigger names the affordance that opened or closed the modal.
type Trigger string

const (
	TriggerPrimaryButton Trigger = "primary-button"
	TriggerHeroButton    Trigger = "hero-button"
	TriggerCloseButton   Trigger = "close-button"
	TriggerBackdrop      Trigger = "backdrop"
	TriggerEscape        Trigger = "escape"
)

// Target is what a click on the modal landed on.
type Target int

const (
	// TargetBackdrop is the modal root itself, outside the content panel.
	TargetBackdrop Target = iota
	TargetContent
)

// Controller owns the modal state. It is not safe for concurrent use; every
// method runs on the Dispatcher.
type Controller struct {
	frame    Frame
	chat     ChatView
	sender   Sender
	dispatch Dispatcher

	logger    *slog.Logger
	afterFunc func(d time.Duration, fn func())
	ctx       context.Context

	state       State
	sending     bool
	transcript  []domain.ChatMessage
	unsubscribe func()
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithAfterFunc replaces the timer used for the delayed hide.
func WithAfterFunc(fn func(d time.Duration, f func())) Option {
	return func(c *Controller) {
		c.afterFunc = fn
	}
}

// WithContext sets the context sends run under.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// New creates a Controller. A nil frame means the page has no modal: a warning
// is logged and ErrMissingElements returned. A nil chat leaves sending unbound.
func New(frame Frame, chat ChatView, sender Sender, dispatch Dispatcher, opts ...Option) (*Controller, error) {
	c := &Controller{
		frame:     frame,
		chat:      chat,
		sender:    sender,
		dispatch:  dispatch,
		logger:    slog.Default(),
		afterFunc: afterFunc,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if frame == nil {
		c.logger.Warn("modal: elements not found, skipping initialization")
		return nil, ErrMissingElements
	}
	if sender == nil {
		return nil, errors.New("modal: sender must not be nil")
	}
	if dispatch == nil {
		return nil, errors.New("modal: dispatcher must not be nil")
	}
	return c, nil
}

func afterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Attach registers the page-wide Escape handler. Only the first call subscribes.
func (c *Controller) Attach(keys KeySource) {
	if keys == nil || c.unsubscribe != nil {
		return
	}
	c.unsubscribe = keys.Subscribe(c.onPageKey)
}

// Detach removes the Escape handler registered by Attach.
func (c *Controller) Detach() {
	if c.unsubscribe == nil {
		return
	}
	c.unsubscribe()
	c.unsubscribe = nil
}

func (c *Controller) onPageKey(k Key) {
	if k.Name == KeyEscape && c.state == Open {
		c.Close(TriggerEscape)
	}
}

func (c *Controller) State() State {
	return c.state
}

// Sending reports whether a send is in flight.
func (c *Controller) Sending() bool {
	return c.sending
}

// Transcript returns the visible messages in the order they were appended.
func (c *Controller) Transcript() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Controller) Open(trigger Trigger) {
	if c.state == Open {
		return
	}
	c.state = Open
	c.logger.Debug("modal: open", "trigger", trigger)

	c.frame.Reveal()
	c.dispatch.Dispatch(func() {
		if c.state == Open {
			c.frame.SetTransition(true)
		}
	})
}

func (c *Controller) Close(trigger Trigger) {
	if c.state == Closed {
		return
	}
	c.state = Closed
	c.logger.Debug("modal: close", "trigger", trigger)

	c.frame.SetTransition(false)
	c.afterFunc(HideDelay, func() {
		c.dispatch.Dispatch(func() {
			// reopened during the transition
			if c.state == Closed {
				c.frame.Conceal()
			}
		})
	})
}

// Click closes the modal when the click landed on the backdrop.
func (c *Controller) Click(target Target) {
	if target == TargetBackdrop {
		c.Close(TriggerBackdrop)
	}
}

// InputKey handles a key press in the text input and reports whether it was
// consumed. Enter without Shift sends.
func (c *Controller) InputKey(k Key) bool {
	if k.Name != KeyEnter || k.Shift {
		return false
	}
	c.Submit()
	return true
}

// Submit sends the current input. It is ignored when the input is blank or a
// send is already in flight.
func (c *Controller) Submit() {
	if c.chat == nil {
		return
	}
	text := strings.TrimSpace(c.chat.InputValue())
	if text == "" || c.sending {
		return
	}

	c.sending = true
	c.chat.ClearInput()
	c.appendBubble(domain.ChatMessage{Text: text, Role: domain.RoleUser})

	typing := c.chat.AppendTyping()
	c.chat.ScrollToBottom()

	go func() {
		res, ok := c.call(text)
		c.dispatch.Dispatch(func() {
			c.finish(typing, res, ok)
		})
	}()
}

// call runs off the UI actor. ok is false if the sender panicked.
func (c *Controller) call(text string) (res domain.ChatResponse, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("modal: send failed unexpectedly", "panic", r)
			res, ok = domain.ChatResponse{}, false
		}
	}()
	return c.sender.Send(c.ctx, text), true
}

func (c *Controller) finish(typing Removable, res domain.ChatResponse, ok bool) {
	defer func() {
		c.sending = false
		c.chat.FocusInput()
	}()

	if typing != nil {
		typing.Remove()
	}
	if !ok {
		c.appendBubble(domain.ChatMessage{Text: unexpectedErrorText, Role: domain.RoleError})
		return
	}
	c.appendBubble(domain.ChatMessage{Text: res.Text, Role: res.RoleFor()})
}

func (c *Controller) appendBubble(msg domain.ChatMessage) {
	c.transcript = append(c.transcript, msg)
	c.chat.AppendBubble(msg)
	c.chat.ScrollToBottom()
}
