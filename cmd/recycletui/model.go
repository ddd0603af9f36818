package main

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-theft-auto/recycler"
)

// statusRows is the space reserved under the list.
const statusRows = 1

var (
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	altRowStyle = rowStyle.Background(lipgloss.Color("236"))
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var teaKeys = map[string]recycler.Key{
	"up":     recycler.KeyUp,
	"k":      recycler.KeyUp,
	"down":   recycler.KeyDown,
	"j":      recycler.KeyDown,
	"pgup":   recycler.KeyPageUp,
	"pgdown": recycler.KeyPageDown,
	" ":      recycler.KeyPageDown,
	"home":   recycler.KeyHome,
	"g":      recycler.KeyHome,
	"end":    recycler.KeyEnd,
	"G":      recycler.KeyEnd,
	"esc":    recycler.KeyEscape,
	"left":   recycler.KeyLeft,
	"right":  recycler.KeyRight,
}

// model shows one item per terminal row. The recycler keeps only a
// screenful of cells alive however many items there are.
type model struct {
	view   *recycler.ScrollView
	input  *recycler.InputState
	source recycler.DataSource
	width  int
	height int
	err    error
}

func newModel(source recycler.DataSource, width, height int, opts ...recycler.Option) (*model, error) {
	opts = append([]recycler.Option{recycler.WithMinPoolSize(0), recycler.WithMinPoolCoverage(1.5)}, opts...)
	r, err := recycler.New(recycler.NewBasicPool(), opts...)
	if err != nil {
		return nil, err
	}
	width, height = max(width, 1), max(height-statusRows, 1)
	viewport := recycler.NewTransform("terminal", recycler.Vec2{X: float32(width), Y: float32(height)})
	prototype := recycler.NewTransform("row", recycler.Vec2{X: float32(width), Y: 1})
	view := recycler.NewScrollView("tui", viewport, prototype, r, recycler.WithWheelSpeed(3))
	view.Focused = true
	view.SetScreenHeight(float32(height))

	m := &model{view: view, input: recycler.NewInputState(), source: source, width: width, height: height}
	if err := view.Initialize(source); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		if k, ok := teaKeys[msg.String()]; ok {
			m.input.PressKey(k)
			m.apply()
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		m.input.SetMousePos(float32(msg.X), float32(msg.Y))
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.input.SetMouseWheel(0, 1)
		case tea.MouseButtonWheelDown:
			m.input.SetMouseWheel(0, -1)
		default:
			return m, nil
		}
		m.apply()
	}
	return m, nil
}

// apply feeds the pending input to the view as one frame.
func (m *model) apply() {
	m.view.Update(m.input, 0)
	m.input.Reset()
}

func (m *model) resize(width, height int) {
	width, height = max(width, 1), max(height-statusRows, 1)
	if width == m.width && height == m.height {
		return
	}
	m.width, m.height = width, height
	m.view.SetScreenHeight(float32(height))
	m.err = m.view.Resize(recycler.Vec2{X: float32(width), Y: float32(height)})
}

// rows returns the label of each visible terminal row, empty past the end.
func (m *model) rows() []string {
	out := make([]string, m.height)
	m.view.Recycler().Window().InOrder(func(s *recycler.Slot) {
		t := s.Cell.Transform()
		if !t.Active() {
			return
		}
		wr := t.WorldRect()
		row := int(math.Round(float64(float32(m.height) - (wr.Y + wr.H))))
		if row < 0 || row >= m.height {
			return
		}
		label := ""
		if l, ok := s.Cell.(recycler.Labeler); ok {
			label = l.Label()
		}
		out[row] = fmt.Sprintf("%s %s", indexStyle.Render(fmt.Sprintf("%6d", s.DataIndex)), label)
		if s.DataIndex%2 == 1 {
			out[row] = altRowStyle.Width(m.width).Render(out[row])
		} else {
			out[row] = rowStyle.Width(m.width).Render(out[row])
		}
	})
	return out
}

func (m *model) View() string {
	var b strings.Builder
	for _, row := range m.rows() {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	r := m.view.Recycler()
	status := fmt.Sprintf("%d/%d  %3.0f%%  cells %d",
		r.First(), r.ItemCount(), m.view.Normalized()*100, r.PoolSize())
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
	} else {
		b.WriteString(statusStyle.Render(status))
	}
	return b.String()
}
