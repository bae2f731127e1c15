package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/placemat/pkg/scene"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// statusFilters are the filter states cycled with tab.
var statusFilters = []string{"all", scene.StatusPlaced, scene.StatusForced, scene.StatusSuppressed}

// inspectCommand creates the inspect command for browsing layout documents.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <layout.json>",
		Short: "Browse a layout document interactively",
		Long: `Browse a layout document interactively.

Opens a terminal table over the placements of a resolved layout. Each
row shows the element's kind, status, accepted candidate rank, and the
elements that blocked it. Press tab to cycle the status filter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scene.ReadLayoutFile(args[0])
			if err != nil {
				return err
			}
			model := NewLayoutModel(doc)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			return nil
		},
	}
}

// =============================================================================
// LayoutModel - Interactive placement browser
// =============================================================================

// LayoutModel is the bubbletea model for browsing a layout document.
type LayoutModel struct {
	Layout scene.Layout
	Rows   []scene.Placement
	Cursor int
	Offset int
	Height int
	Filter int
}

// NewLayoutModel creates a browser over the given layout document.
func NewLayoutModel(doc scene.Layout) LayoutModel {
	m := LayoutModel{
		Layout: doc,
		Height: 15,
	}
	m.applyFilter()
	return m
}

func (m *LayoutModel) applyFilter() {
	want := statusFilters[m.Filter]
	m.Rows = m.Rows[:0]
	for _, p := range m.Layout.Placements {
		if want == "all" || p.Status == want {
			m.Rows = append(m.Rows, p)
		}
	}
	m.Cursor = 0
	m.Offset = 0
}

func (m LayoutModel) Init() tea.Cmd {
	return nil
}

func (m LayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "tab":
			m.Filter = (m.Filter + 1) % len(statusFilters)
			m.applyFilter()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m LayoutModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout: " + m.Layout.Scene))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab filter  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		position := "—"
		if p.Status != scene.StatusSuppressed {
			position = fmt.Sprintf("%.0f, %.0f", p.X, p.Y)
		}

		rank := "—"
		if p.Status != scene.StatusSuppressed {
			rank = fmt.Sprintf("%d", p.Rank+1)
		}

		blocked := "—"
		if len(p.BlockedBy) > 0 {
			blocked = strings.Join(p.BlockedBy, ", ")
		}

		rows = append(rows, []string{cursor, p.ID, p.Kind, p.Status, rank, position, blocked})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Element", "Kind", "Status", "Rank", "Position", "Blocked By").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			p := m.Rows[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			switch p.Status {
			case scene.StatusForced:
				base = base.Foreground(colorYellow)
			case scene.StatusSuppressed:
				base = base.Foreground(colorDim)
			default:
				base = base.Foreground(colorWhite)
			}
			if isCurrent {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	s := m.Layout.Stats
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %s  %d placed · %d forced · %d suppressed",
		m.Cursor+1, len(m.Rows), statusFilters[m.Filter], s.Placed, s.Forced, s.Suppressed)))

	return b.String()
}
