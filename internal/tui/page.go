package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"segurab-assistant/internal/domain"
	"segurab-assistant/internal/modal"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxModalWidth = 72
)

// item is one rendered transcript element.
type item struct {
	id     int
	msg    domain.ChatMessage
	typing bool
}

// page is the terminal equivalent of the document: the modal frame and the
// chat elements. It is only touched from Update and View.
type page struct {
	shown   bool
	visible bool

	items  []item
	nextID int

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
}

func newPage() *page {
	in := textinput.New()
	in.Placeholder = "Escribe tu mensaje..."
	in.Prompt = "› "
	in.CharLimit = 1000
	in.Focus()

	s := spinner.New()
	s.Spinner = spinner.Ellipsis
	s.Style = typingStyle

	p := &page{
		input:   in,
		spinner: s,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	p.viewport = viewport.New(p.innerWidth(), p.transcriptHeight())
	return p
}

func (p *page) resize(width, height int) {
	p.width, p.height = width, height
	p.viewport.Width = p.innerWidth()
	p.viewport.Height = p.transcriptHeight()
	p.input.Width = p.innerWidth() - 4
	p.render()
}

func (p *page) modalWidth() int {
	return max(min(p.width-4, maxModalWidth), 20)
}

func (p *page) innerWidth() int {
	return p.modalWidth() - 4
}

func (p *page) transcriptHeight() int {
	return max(p.height-10, 4)
}

// Frame

func (p *page) Reveal() { p.shown = true }

func (p *page) SetTransition(visible bool) { p.visible = visible }

func (p *page) Conceal() { p.shown = false }

// ChatView

func (p *page) AppendBubble(msg domain.ChatMessage) {
	p.nextID++
	p.items = append(p.items, item{id: p.nextID, msg: msg})
	p.render()
}

func (p *page) AppendTyping() modal.Removable {
	p.nextID++
	p.items = append(p.items, item{id: p.nextID, typing: true})
	p.render()
	return typingIndicator{page: p, id: p.nextID}
}

func (p *page) ScrollToBottom() { p.viewport.GotoBottom() }

func (p *page) InputValue() string { return p.input.Value() }

func (p *page) ClearInput() { p.input.Reset() }

func (p *page) FocusInput() { p.input.Focus() }

// scroll moves the transcript for navigation keys and wheel events.
func (p *page) scroll(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *page) removeItem(id int) {
	for i, it := range p.items {
		if it.id == id {
			p.items = append(p.items[:i], p.items[i+1:]...)
			break
		}
	}
	p.render()
}

func (p *page) typing() bool {
	for _, it := range p.items {
		if it.typing {
			return true
		}
	}
	return false
}

type typingIndicator struct {
	page *page
	id   int
}

func (t typingIndicator) Remove() { t.page.removeItem(t.id) }

func (p *page) updateSpinner(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	if p.typing() {
		p.render()
	}
	return cmd
}

// render refreshes the transcript viewport content.
func (p *page) render() {
	width := p.innerWidth()
	bubbleWidth := width * 3 / 4

	var b strings.Builder
	for i, it := range p.items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch {
		case it.typing:
			b.WriteString(agentBubbleStyle.Width(5).Render(p.spinner.View()))
		case it.msg.Role == domain.RoleUser:
			bubble := userBubbleStyle.MaxWidth(bubbleWidth).Render(wrap(it.msg.Text, bubbleWidth-2))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		case it.msg.Role == domain.RoleError:
			b.WriteString(errorBubbleStyle.Render(wrap(it.msg.Text, bubbleWidth-3)))
		default:
			b.WriteString(agentBubbleStyle.Render(wrap(it.msg.Text, bubbleWidth-2)))
		}
	}
	p.viewport.SetContent(b.String())
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(max(width, 1)).Render(text)
}
