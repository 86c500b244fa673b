package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/oyalabs/flowcanvas/pkg/catalog"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeTypeListModel - Interactive node type selection
// =============================================================================

// nodeTypeRow is one selectable entry in the node type palette.
type nodeTypeRow struct {
	Type  string
	Entry catalog.Entry
}

// NodeTypeListModel is the bubbletea model for the node type palette shown
// by "add --interactive". Types are grouped by category and sorted by key.
type NodeTypeListModel struct {
	Rows     []nodeTypeRow
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewNodeTypeListModel creates a palette model over the full catalog.
func NewNodeTypeListModel() NodeTypeListModel {
	types := catalog.Types()
	rows := make([]nodeTypeRow, 0, len(types))
	for _, t := range types {
		entry, _ := catalog.Lookup(t)
		rows = append(rows, nodeTypeRow{Type: t, Entry: entry})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Entry.Category != rows[j].Entry.Category {
			return rows[i].Entry.Category < rows[j].Entry.Category
		}
		return rows[i].Type < rows[j].Type
	})
	return NodeTypeListModel{
		Rows:   rows,
		Height: 15,
	}
}

func (m NodeTypeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeTypeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.Selected = m.Rows[m.Cursor].Type
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

func (m NodeTypeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Node Type"))
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
		rows = append(rows, []string{cursor, r.Type, string(r.Entry.Category), r.Entry.Label})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Type", "Category", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// pickNodeType runs the interactive palette and returns the chosen type.
// Returns empty when the user quit without selecting.
func pickNodeType() (string, error) {
	program := tea.NewProgram(NewNodeTypeListModel())
	final, err := program.Run()
	if err != nil {
		return "", err
	}
	model, ok := final.(NodeTypeListModel)
	if !ok {
		return "", nil
	}
	return model.Selected, nil
}
