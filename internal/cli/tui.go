package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/segviz/segviz/pkg/manifest"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TissueListModel - Interactive tissue browsing
// =============================================================================

// TissueSelection holds the result of the tissue selection.
type TissueSelection struct {
	Tissue *manifest.Tissue
}

// TissueListModel is the bubbletea model for browsing a manifest's tissues.
type TissueListModel struct {
	Manifest *manifest.SceneManifest
	Tissues  []manifest.Tissue
	Cursor   int
	Selected *TissueSelection
	Height   int
	Offset   int
}

// NewTissueListModel creates a tissue list over the given subset.
// An empty subset browses every tissue in the manifest.
func NewTissueListModel(m *manifest.SceneManifest, subset []manifest.Tissue) TissueListModel {
	tissues := subset
	if len(tissues) == 0 {
		tissues = m.Tissues
	}
	return TissueListModel{
		Manifest: m,
		Tissues:  tissues,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m TissueListModel) Init() tea.Cmd {
	return nil
}

func (m TissueListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Tissues)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			t := m.Tissues[m.Cursor]
			m.Selected = &TissueSelection{Tissue: &t}
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

func (m TissueListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse " + m.Manifest.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Tissues) {
		end = len(m.Tissues)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := m.Tissues[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		swatch := "  "
		if t.Color != nil {
			swatch = colorSwatch(*t.Color)
		}

		figures := tissueFigures(m.Manifest, t.Name)
		if figures == "" {
			figures = "—"
		}

		rows = append(rows, []string{
			cursor,
			swatch,
			t.Name,
			formatIndex(t.Index),
			formatOrientation(t.Orientation),
			formatOpacity(t.Opacity),
			figures,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Tissue", "Index", "Orient", "Opacity", "Figures").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Tissues) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col >= 3 && col <= 5 {
				if isCurrent {
					base = base.Foreground(colorGray)
				} else {
					base = base.Foreground(colorDim)
				}
			}

			if isCurrent {
				if col < 3 || col > 5 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Tissues))))

	return b.String()
}

// =============================================================================
// FigureListModel - Interactive figure group selection
// =============================================================================

// FigureSelection holds the result of the figure selection.
// An empty Figure selects the whole scene.
type FigureSelection struct {
	Figure string
}

// FigureListModel is the bubbletea model for picking a figure group.
type FigureListModel struct {
	Manifest *manifest.SceneManifest
	Names    []string
	Cursor   int
	Selected *FigureSelection
}

// entireScene labels the first picker entry, which browses every tissue.
const entireScene = "(entire scene)"

// NewFigureListModel creates a figure picker for the manifest's groups.
func NewFigureListModel(m *manifest.SceneManifest) FigureListModel {
	names := append([]string{entireScene}, m.FigureNames()...)
	return FigureListModel{Manifest: m, Names: names}
}

func (m FigureListModel) Init() tea.Cmd {
	return nil
}

func (m FigureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Names)-1 {
				m.Cursor++
			}
		case "enter":
			figure := m.Names[m.Cursor]
			if figure == entireScene {
				figure = ""
			}
			m.Selected = &FigureSelection{Figure: figure}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FigureListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Figure"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, name := range m.Names {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		count := len(m.Manifest.Tissues)
		if name != entireScene {
			members, _ := m.Manifest.Figure(name)
			count = len(members)
		}

		line := fmt.Sprintf("%s%-25s  %s", cursor, name, listDimStyle.Render(fmt.Sprintf("%d tissues", count)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if name == entireScene {
			b.WriteString(listDimStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// tissueFigures returns the comma-joined names of the figures that
// include the named tissue, or "" when none do.
func tissueFigures(m *manifest.SceneManifest, name string) string {
	var figures []string
	for _, fig := range m.FigureNames() {
		members, _ := m.Figure(fig)
		for _, member := range members {
			if member == name {
				figures = append(figures, fig)
				break
			}
		}
	}
	return strings.Join(figures, ", ")
}
