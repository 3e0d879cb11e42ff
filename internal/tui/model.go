package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"segurab-assistant/internal/modal"
)

// Model is the Bubble Tea model hosting the assistant modal.
type Model struct {
	page       *page
	dispatch   *dispatcher
	keys       *modal.KeyBus
	controller *modal.Controller
}

// New wires a modal controller to a terminal page.
func New(sender modal.Sender, logger *slog.Logger) (Model, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		page:     newPage(),
		dispatch: &dispatcher{},
		keys:     &modal.KeyBus{},
	}
	c, err := modal.New(m.page, m.page, sender, m.dispatch, modal.WithLogger(logger))
	if err != nil {
		return Model{}, fmt.Errorf("tui: create modal: %w", err)
	}
	c.Attach(m.keys)
	m.controller = c
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.page.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.page.resize(msg.Width, msg.Height)
		return m, nil

	case flushMsg:
		m.dispatch.flush()
		return m, nil

	case spinner.TickMsg:
		return m, m.page.updateSpinner(msg)

	case tea.MouseMsg:
		if !m.page.shown {
			return m, nil
		}
		if tea.MouseEvent(msg).IsWheel() {
			return m, m.page.scroll(msg)
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if m.page.insideModal(msg.X, msg.Y) {
				m.controller.Click(modal.TargetContent)
			} else {
				m.controller.Click(modal.TargetBackdrop)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	key := pageKey(msg)
	m.keys.Publish(key)

	if m.controller.State() == modal.Closed {
		switch msg.String() {
		case "a":
			m.controller.Open(modal.TriggerPrimaryButton)
		case "h":
			m.controller.Open(modal.TriggerHeroButton)
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case msg.Type == tea.KeyCtrlW:
		m.controller.Close(modal.TriggerCloseButton)
		return m, nil
	case isScrollKey(msg):
		return m, m.page.scroll(msg)
	case m.controller.InputKey(key):
		return m, nil
	case key.Name == modal.KeyEnter:
		// Shift+Enter: the single-line input has nowhere to put a newline.
		return m, nil
	}

	var cmd tea.Cmd
	m.page.input, cmd = m.page.input.Update(msg)
	return m, cmd
}

// isScrollKey reports keys that move the transcript rather than edit the
// input. Letters stay with the input even though the viewport binds some.
func isScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		return true
	}
	return false
}

// pageKey translates a terminal key press into the page's key vocabulary.
// Terminals report Shift+Enter inconsistently; Alt+Enter stands in for it.
func pageKey(msg tea.KeyMsg) modal.Key {
	switch msg.String() {
	case "esc":
		return modal.Key{Name: modal.KeyEscape}
	case "enter":
		return modal.Key{Name: modal.KeyEnter}
	case "alt+enter", "shift+enter":
		return modal.Key{Name: modal.KeyEnter, Shift: true}
	}
	return modal.Key{Name: msg.String()}
}

func (m Model) View() string {
	if !m.page.shown {
		return m.landing()
	}
	box := m.page.modalBox()
	return lipgloss.Place(m.page.width, m.page.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) landing() string {
	var b strings.Builder
	b.WriteString(brandStyle.Render("SEGURAB"))
	b.WriteString("\n")
	b.WriteString(heroStyle.Render("Ciberseguridad y tecnología para tu empresa."))
	b.WriteString("\n\n")
	b.WriteString(keyStyle.Render("[a]") + hintStyle.Render(" asistente IA   "))
	b.WriteString(keyStyle.Render("[h]") + hintStyle.Render(" habla con nuestro agente   "))
	b.WriteString(keyStyle.Render("[q]") + hintStyle.Render(" salir"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// modalBox renders the modal panel with its current transition state.
func (p *page) modalBox() string {
	style := modalHiddenStyle
	if p.visible {
		style = modalVisibleStyle
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		modalTitleStyle.Render("Asistente Segurab"),
		hintStyle.Render("   esc / ctrl+w cerrar"),
	)
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		p.viewport.View(),
		inputStyle.Width(p.innerWidth()).Render(p.input.View()),
	)
	return style.Width(p.modalWidth() - 2).Render(body)
}

// insideModal reports whether the cell at x, y is on the centered modal panel.
func (p *page) insideModal(x, y int) bool {
	box := p.modalBox()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	left := (p.width - w) / 2
	top := (p.height - h) / 2
	return x >= left && x < left+w && y >= top && y < top+h
}

// Close detaches the page-wide key handler.
func (m Model) Close() {
	m.controller.Detach()
}

// Run shows the landing page until the user quits.
func Run(ctx context.Context, sender modal.Sender, logger *slog.Logger) error {
	m, err := New(sender, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	m.dispatch.bind(p)

	_, err = p.Run()
	return err
}
