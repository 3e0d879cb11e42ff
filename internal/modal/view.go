package modal

import (
	"context"

	"segurab-assistant/internal/domain"
)

// Frame is the modal root and its content panel.
type Frame interface {
	// Reveal makes the modal present (still transparent).
	Reveal()
	// SetTransition applies (true) or reverts (false) the visible transition state.
	SetTransition(visible bool)
	// Conceal removes the modal from the page.
	Conceal()
}

// Removable is a rendered element that can be taken out of the transcript.
type Removable interface {
	Remove()
}

// ChatView is the message list plus the text input.
type ChatView interface {
	AppendBubble(msg domain.ChatMessage)
	AppendTyping() Removable
	ScrollToBottom()
	InputValue() string
	ClearInput()
	FocusInput()
}

// Sender produces the assistant response for a message.
type Sender interface {
	Send(ctx context.Context, userMessage string) domain.ChatResponse
}

// Dispatcher runs fn on the UI actor. All Controller methods must be called
// from functions it runs.
type Dispatcher interface {
	Dispatch(fn func())
}

// KeySource delivers page-wide key presses.
type KeySource interface {
	Subscribe(fn func(Key)) (unsubscribe func())
}

// Key is a key press as seen by the page.
type Key struct {
	Name  string
	Shift bool
}

const (
	KeyEscape = "Escape"
	KeyEnter  = "Enter"
)
