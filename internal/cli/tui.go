package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/inspect"
)

// watchStatus is the state shown in the status pill.
type watchStatus int

const (
	statusIdle watchStatus = iota
	statusRendering
	statusOK
	statusError
)

func (s watchStatus) String() string {
	switch s {
	case statusRendering:
		return "rendering"
	case statusOK:
		return "ok"
	case statusError:
		return "error"
	default:
		return "idle"
	}
}

var (
	pillBase = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0"))

	pillStyles = map[watchStatus]lipgloss.Style{
		statusIdle:      pillBase.Background(colorGray),
		statusRendering: pillBase.Background(colorYellow),
		statusOK:        pillBase.Background(colorGreen),
		statusError:     pillBase.Background(colorRed),
	}

	watchErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	watchDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// renderStartMsg is sent when a changed program starts rendering.
type renderStartMsg struct{}

// renderDoneMsg carries the outcome of one render.
type renderDoneMsg struct {
	size   inspect.Size
	files  []string
	cached bool
	err    error
	at     time.Time
}

// watchModel is the bubbletea model for the watch status view.
type watchModel struct {
	source  string
	status  watchStatus
	size    inspect.Size
	files   []string
	cached  bool
	err     error
	renders int
	last    time.Time
}

func newWatchModel(source string) watchModel {
	return watchModel{source: source}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case renderStartMsg:
		m.status = statusRendering
	case renderDoneMsg:
		m.renders++
		m.last = msg.at
		if msg.err != nil {
			m.status = statusError
			m.err = msg.err
			return m, nil
		}
		m.status = statusOK
		m.err = nil
		m.size = msg.size
		m.files = msg.files
		m.cached = msg.cached
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("imageforge watch"))
	b.WriteString("  ")
	b.WriteString(StyleValue.Render(m.source))
	b.WriteString("\n\n")

	b.WriteString(pillStyles[m.status].Render(m.status.String()))
	if dims := m.size.String(); dims != "" {
		b.WriteString("  ")
		b.WriteString(StyleNumber.Render(dims))
	}
	if m.renders > 0 {
		b.WriteString(watchDimStyle.Render(fmt.Sprintf("  #%d at %s", m.renders, m.last.Format("15:04:05"))))
	}
	if m.status == statusOK && m.cached {
		b.WriteString("  " + styleCached.Render(iconCached))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(watchErrorStyle.Render(errors.UserMessage(m.err)))
		b.WriteString("\n")
	}
	for _, f := range m.files {
		b.WriteString(watchDimStyle.Render("  "+iconArrow+" ") + StyleValue.Render(f) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(watchDimStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}
