package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/tabviz/tabviz/pkg/relate"
	"github.com/tabviz/tabviz/pkg/table"
)

// Preview styles
var (
	previewActiveTab   = StyleTitle
	previewInactiveTab = lipgloss.NewStyle().Foreground(colorDim)
	previewHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	previewCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewCellStyle   = lipgloss.NewStyle().Foreground(colorGray).PaddingRight(2)
)

// previewModel is the bubbletea model for browsing the node and edge tables
// of a conversion result.
type previewModel struct {
	graph *relate.Result

	// tab selects the visible table: 0 for nodes, 1 for edges.
	tab    int
	cursor int
	offset int
	height int
}

// newPreviewModel creates a preview over the given conversion result.
func newPreviewModel(g *relate.Result) previewModel {
	return previewModel{graph: g, height: 15}
}

// current returns the table the active tab shows.
func (m previewModel) current() *table.Table {
	if m.tab == 1 {
		return m.graph.Edges
	}
	return m.graph.Nodes
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			m.tab = 1 - m.tab
			m.cursor = 0
			m.offset = 0
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < m.current().Len()-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(m.tabBar())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ scroll  ⇥ switch table  q quit"))
	b.WriteString("\n\n")

	src := m.current()
	if src.Len() == 0 {
		b.WriteString(StyleDim.Render("  (empty)"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.offset + m.height
	if end > src.Len() {
		end = src.Len()
	}

	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		row := make([]string, 0, len(src.Columns()))
		for _, col := range src.Columns() {
			row = append(row, src.Value(i, col))
		}
		rows = append(rows, row)
	}

	cursorRow := m.cursor - m.offset
	t := ltable.New().
		Border(lipgloss.HiddenBorder()).
		Headers(src.Columns()...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == -1: // header
				return previewHeaderStyle
			case row == cursorRow:
				return previewCursorStyle
			default:
				return previewCellStyle
			}
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  row %d of %d", m.cursor+1, src.Len())))
	b.WriteString("\n")

	return b.String()
}

// tabBar renders the nodes/edges tab header with counts.
func (m previewModel) tabBar() string {
	nodes := fmt.Sprintf("Nodes (%d)", m.graph.Nodes.Len())
	edges := fmt.Sprintf("Edges (%d)", m.graph.Edges.Len())
	if m.tab == 0 {
		return previewActiveTab.Render(nodes) + "  " + previewInactiveTab.Render(edges)
	}
	return previewInactiveTab.Render(nodes) + "  " + previewActiveTab.Render(edges)
}
