package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yergin/test-pattern-descriptor/pkg/render"
	"github.com/yergin/test-pattern-descriptor/pkg/tpat"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LayoutBrowserModel - Interactive layout tree navigation
// =============================================================================

// browserRow is one visible line of the layout tree.
type browserRow struct {
	node  *render.Node
	depth int
}

// LayoutBrowserModel is the bubbletea model for interactive layout
// inspection. It shows the patch tree with collapsible nodes and a detail
// panel for the node under the cursor.
type LayoutBrowserModel struct {
	Doc    *tpat.Document
	Layout *render.Layout
	Cursor int
	Height int
	Offset int

	rows      []browserRow
	collapsed map[string]bool
}

// NewLayoutBrowserModel creates a browser model with every node expanded.
func NewLayoutBrowserModel(doc *tpat.Document, layout *render.Layout) LayoutBrowserModel {
	m := LayoutBrowserModel{
		Doc:       doc,
		Layout:    layout,
		Height:    15,
		collapsed: map[string]bool{},
	}
	m.rebuildRows()
	return m
}

// rebuildRows flattens the layout tree into visible rows, skipping the
// children of collapsed nodes.
func (m *LayoutBrowserModel) rebuildRows() {
	m.rows = m.rows[:0]
	m.appendRows(m.Layout.Root, 0)
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
}

func (m *LayoutBrowserModel) appendRows(n *render.Node, depth int) {
	m.rows = append(m.rows, browserRow{node: n, depth: depth})
	if m.collapsed[n.Path] {
		return
	}
	for _, c := range n.Children {
		m.appendRows(c, depth+1)
	}
}

func (m LayoutBrowserModel) Init() tea.Cmd {
	return nil
}

func (m LayoutBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			row := m.rows[m.Cursor]
			if len(row.node.Children) > 0 {
				m.collapsed[row.node.Path] = !m.collapsed[row.node.Path]
				m.rebuildRows()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m LayoutBrowserModel) View() string {
	var b strings.Builder

	title := m.Doc.Name
	if title == "" {
		title = "Layout"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  " + listDimStyle.Render(fmt.Sprintf("%dx%d, %d-bit", m.Layout.Width, m.Layout.Height, m.Doc.Depth)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand/collapse  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		glyph := "· "
		if len(row.node.Children) > 0 {
			glyph = "▾ "
			if m.collapsed[row.node.Path] {
				glyph = "▸ "
			}
		}

		line := cursor + strings.Repeat("  ", row.depth) + glyph + pathBase(row.node.Path)
		geom := fmt.Sprintf("  %d,%d %dx%d", row.node.Rect.Min.X, row.node.Rect.Min.Y, row.node.Rect.Dx(), row.node.Rect.Dy())

		style := listNormalStyle
		if i == m.Cursor {
			style = listSelectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString(listDimStyle.Render(geom))
		b.WriteString("\n")
	}

	if len(m.rows) > end {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  …%d more", len(m.rows)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	return b.String()
}

// detailView describes the node under the cursor.
func (m LayoutBrowserModel) detailView() string {
	if len(m.rows) == 0 {
		return ""
	}
	n := m.rows[m.Cursor].node

	var b strings.Builder
	write := func(key, value string) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%-8s", key)))
		b.WriteString(" " + listNormalStyle.Render(value) + "\n")
	}

	write("path", n.Path)
	write("rect", fmt.Sprintf("%d,%d %dx%d", n.Rect.Min.X, n.Rect.Min.Y, n.Rect.Dx(), n.Rect.Dy()))
	if n.IsFill() {
		write("fill", fmt.Sprintf("%v", n.Fill))
		return b.String()
	}
	if n.Border != (tpat.Extent{}) {
		write("border", fmt.Sprintf("v=%d h=%d", n.Border.V, n.Border.H))
	}
	if n.Patch.Background != nil {
		write("bg", backgroundDetail(n.Patch.Background))
	}
	if n.Grid != nil {
		write("grid", fmt.Sprintf("%dx%d cells, col sizes %v, row sizes %v",
			n.Grid.Rows.Cells(), n.Grid.Cols.Cells(), n.Grid.Cols.Sizes, n.Grid.Rows.Sizes))
	}
	if n.Patch.Image != "" {
		img := n.Patch.Image
		if n.Patch.Premul {
			img += " (premultiplied)"
		}
		write("image", img)
	}
	if notes := describeText(n.Patch); notes != "" {
		write("notes", notes)
	}
	return b.String()
}

// describeText joins a patch's description fields into one line.
func describeText(p *tpat.Patch) string {
	parts := p.Descriptions
	if p.Description != "" {
		parts = append([]string{p.Description}, parts...)
	}
	return strings.Join(parts, " / ")
}

// browseLayout runs the interactive layout browser until the user quits.
func browseLayout(doc *tpat.Document, layout *render.Layout) error {
	p := tea.NewProgram(NewLayoutBrowserModel(doc, layout))
	_, err := p.Run()
	return err
}
