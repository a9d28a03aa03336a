package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// NodeListModel - Interactive positioned-node browser
// =============================================================================

// nodeRow is one positioned node in the browser.
type nodeRow struct {
	ID    string
	Label string
	Type  string
	Layer int
	X     int
	Y     int
}

// NodeListModel is the bubbletea model for browsing a computed layout.
// Rows are expected in layer order, left to right within a layer.
type NodeListModel struct {
	Rows     []nodeRow
	Cursor   int
	Selected *nodeRow
	Height   int
	Offset   int
}

// NewNodeListModel creates a new node list model.
func NewNodeListModel(rows []nodeRow) NodeListModel {
	return NodeListModel{
		Rows:   rows,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			row := m.Rows[m.Cursor]
			m.Selected = &row
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		nodeType := r.Type
		if nodeType == "" {
			nodeType = "—"
		}

		label := r.Label
		if label == "" {
			label = "—"
		}
		if len(label) > 40 {
			label = label[:37] + "..."
		}

		pos := fmt.Sprintf("(%d, %d)", r.X, r.Y)
		rows = append(rows, []string{cursor, r.ID, nodeType, strconv.Itoa(r.Layer), pos, label})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Type", "Layer", "Position", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 3 || col == 4 {
				base = base.Foreground(colorGray)
			}

			if isCurrent {
				if col != 3 && col != 4 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Bold(true)
			}
			if col == 5 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
