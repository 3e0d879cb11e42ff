// Package console hosts the assistant modal on plain line-oriented streams,
// for pipes and terminals without cursor control.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"segurab-assistant/internal/domain"
	"segurab-assistant/internal/modal"
)

// QuitCommand closes the chat, like pressing Escape on the page.
const QuitCommand = "/salir"

var labels = map[domain.Role]string{
	domain.RoleUser:  "tú",
	domain.RoleAgent: "asistente",
	domain.RoleError: "error",
}

// host implements the modal's frame and chat view. Its state is only touched
// on the loop.
type host struct {
	out     io.Writer
	input   string
	focused chan struct{}
}

func (h *host) Reveal()            {}
func (h *host) SetTransition(bool) {}
func (h *host) Conceal()           {}

func (h *host) AppendBubble(msg domain.ChatMessage) {
	if msg.Role == domain.RoleUser {
		return
	}
	fmt.Fprintf(h.out, "%s: %s\n", labels[msg.Role], msg.Text)
}

func (h *host) AppendTyping() modal.Removable { return noopRemovable{} }
func (h *host) ScrollToBottom()               {}
func (h *host) InputValue() string            { return h.input }
func (h *host) ClearInput()                   { h.input = "" }

// FocusInput marks the end of a send.
func (h *host) FocusInput() {
	select {
	case h.focused <- struct{}{}:
	default:
	}
}

type noopRemovable struct{}

func (noopRemovable) Remove() {}

// Run sends every line read from in and writes the replies to out, one send at
// a time, until in is exhausted, QuitCommand is read or ctx ends.
func Run(ctx context.Context, in io.Reader, out io.Writer, sender modal.Sender, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := modal.NewLoop()
	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	h := &host{out: out, focused: make(chan struct{}, 1)}
	keys := &modal.KeyBus{}

	var (
		c   *modal.Controller
		err error
	)
	if doErr := loop.Do(ctx, func() {
		c, err = modal.New(h, h, sender, loop, modal.WithLogger(logger), modal.WithContext(ctx))
		if err != nil {
			return
		}
		c.Attach(keys)
		c.Open(modal.TriggerPrimaryButton)
	}); doErr != nil {
		return doErr
	}
	if err != nil {
		return err
	}
	defer func() { _ = loop.Do(ctx, c.Detach) }()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == QuitCommand {
			var state modal.State
			if err := loop.Do(ctx, func() {
				keys.Publish(modal.Key{Name: modal.KeyEscape})
				state = c.State()
			}); err != nil {
				return err
			}
			logger.Debug("console: chat closed", "state", state)
			return nil
		}

		var sending bool
		if err := loop.Do(ctx, func() {
			h.input = line
			c.Submit()
			sending = c.Sending()
		}); err != nil {
			return err
		}
		if !sending {
			continue
		}

		select {
		case <-h.focused:
		case <-ctx.Done():
			return ctx.Err()
		case err := <-loopErr:
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("console: read input: %w", err)
	}
	return nil
}
