package cli

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/lineproj/projection"
	"github.com/iw2rmb/lineproj/render"
	"github.com/iw2rmb/lineproj/viewmodel"
)

func newExploreCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "explore <scenario.yaml>",
		Short: "Move a cursor through the wrapped view interactively",
		Long: `Open the scenario in a terminal view. Arrow keys move the cursor through
legal view positions, tab cycles the affinity used to place the cursor, and
the status line shows the model position under it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, lines, err := loadLines(v, args[0])
			if err != nil {
				return err
			}
			log.Printf("explore %s: %d lines, %d view lines", args[0], lines.LineCount(), lines.ViewLineCount())
			p := tea.NewProgram(newExploreModel(s.Name, lines), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running program: %w", err)
			}
			return nil
		},
	}
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

type exploreModel struct {
	title string
	lines *viewmodel.Lines
	keys  KeyMap
	style render.Style

	cursor viewmodel.ViewPos
	aff    projection.Affinity

	width, height int
	top           int
}

func newExploreModel(title string, lines *viewmodel.Lines) exploreModel {
	m := exploreModel{
		title:  title,
		lines:  lines,
		keys:   DefaultKeyMap(),
		style:  viewStyle(),
		height: 24,
	}
	m.cursor = lines.NormalizeViewPos(viewmodel.ViewPos{}, projection.AffinityNone)
	return m
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.follow()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.moveLeft()
		case key.Matches(msg, m.keys.Right):
			m.moveRight()
		case key.Matches(msg, m.keys.Up):
			m.moveVertical(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveVertical(1)
		case key.Matches(msg, m.keys.Home):
			m.cursor = m.place(m.cursor.Row, m.lines.ViewLineMinColumn(m.cursor.Row), projection.AffinityRight)
		case key.Matches(msg, m.keys.End):
			m.cursor = m.place(m.cursor.Row, m.lines.ViewLineMaxColumn(m.cursor.Row), projection.AffinityLeft)
		case key.Matches(msg, m.keys.Affinity):
			m.cycleAffinity()
		default:
			return m, nil
		}
		m.follow()
		log.Printf("cursor %v model %v aff %v", m.cursor, m.lines.ViewToModel(m.cursor), m.aff)
	}
	return m, nil
}

func (m exploreModel) place(row, col int, aff projection.Affinity) viewmodel.ViewPos {
	return m.lines.NormalizeViewPos(viewmodel.ViewPos{Row: row, Col: col}, aff)
}

// moveLeft steps to the nearest legal position left of the cursor on its
// view line, or to the end of the previous view line.
func (m *exploreModel) moveLeft() {
	row := m.cursor.Row
	for col := m.cursor.Col - 1; col >= m.lines.ViewLineMinColumn(row); col-- {
		if next := m.place(row, col, projection.AffinityLeft); viewmodel.CompareViewPos(next, m.cursor) < 0 {
			m.cursor = next
			return
		}
	}
	if row > 0 {
		m.cursor = m.place(row-1, m.lines.ViewLineMaxColumn(row-1), projection.AffinityLeft)
	}
}

// moveRight mirrors moveLeft.
func (m *exploreModel) moveRight() {
	row := m.cursor.Row
	for col := m.cursor.Col + 1; col <= m.lines.ViewLineMaxColumn(row); col++ {
		if next := m.place(row, col, projection.AffinityRight); viewmodel.CompareViewPos(next, m.cursor) > 0 {
			m.cursor = next
			return
		}
	}
	if row < m.lines.ViewLineCount()-1 {
		m.cursor = m.place(row+1, m.lines.ViewLineMinColumn(row+1), projection.AffinityRight)
	}
}

func (m *exploreModel) moveVertical(delta int) {
	row := m.cursor.Row + delta
	if row < 0 || row >= m.lines.ViewLineCount() {
		return
	}
	col := m.cursor.Col
	if hi := m.lines.ViewLineMaxColumn(row); col > hi {
		col = hi
	}
	if lo := m.lines.ViewLineMinColumn(row); col < lo {
		col = lo
	}
	m.cursor = m.place(row, col, m.aff)
}

// cycleAffinity switches to the next affinity and re-projects the model
// position under the cursor with it.
func (m *exploreModel) cycleAffinity() {
	m.aff = (m.aff + 1) % (projection.AffinityRightOfInjectedText + 1)
	pos := m.lines.ViewToModel(m.cursor)
	m.cursor = m.lines.ModelToView(pos, m.aff)
}

func (m *exploreModel) follow() {
	rows := m.bodyHeight()
	if m.cursor.Row < m.top {
		m.top = m.cursor.Row
	}
	if m.cursor.Row >= m.top+rows {
		m.top = m.cursor.Row - rows + 1
	}
}

func (m exploreModel) bodyHeight() int {
	if m.height <= 2 {
		return 1
	}
	return m.height - 2
}

func (m exploreModel) View() string {
	var sb strings.Builder
	end := m.top + m.bodyHeight()
	if n := m.lines.ViewLineCount(); end > n {
		end = n
	}
	for vr := m.top; vr < end; vr++ {
		res := m.lines.RenderViewLine(vr)
		if vr == m.cursor.Row {
			sb.WriteString(res.RenderCursor(m.style, m.cursor.Col))
		} else {
			sb.WriteString(res.Render(m.style))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(statusStyle.Render(m.status()))
	return sb.String()
}

func (m exploreModel) status() string {
	parts := []string{
		fmt.Sprintf("view %v", m.cursor),
		fmt.Sprintf("model %v", m.lines.ViewToModel(m.cursor)),
		fmt.Sprintf("aff %v", m.aff),
	}
	if inj, ok := m.lines.InjectedTextAt(m.cursor); ok {
		parts = append(parts, fmt.Sprintf("at %q", inj.Content))
	}
	if m.title != "" {
		parts = append([]string{m.title}, parts...)
	}
	return strings.Join(parts, "  ")
}
