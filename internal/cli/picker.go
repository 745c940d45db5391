package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PersonListModel - Interactive person selection
// =============================================================================

// PersonListModel is the bubbletea model for picking one person out of
// several name-search matches.
type PersonListModel struct {
	Persons  []*pedigree.Person
	Cursor   int
	Selected *pedigree.Person
	Height   int
	Offset   int
}

// NewPersonListModel creates a new person list model.
func NewPersonListModel(persons []*pedigree.Person) PersonListModel {
	return PersonListModel{
		Persons: persons,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m PersonListModel) Init() tea.Cmd {
	return nil
}

func (m PersonListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Persons)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Persons[m.Cursor]
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

func (m PersonListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Person"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Persons) {
		end = len(m.Persons)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Persons[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{cursor, p.ID, p.Name, lifeSpan(p), p.BirthPlace})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Years", "Birth Place").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Persons) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 3 || col == 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Persons))))

	return b.String()
}

// lifeSpan renders "1893–1951" style year spans, with "?" for unknown ends.
func lifeSpan(p *pedigree.Person) string {
	birth := "?"
	if y := p.Birth.YearOrZero(); y != 0 {
		birth = fmt.Sprintf("%d", y)
	}
	death := "?"
	if y := p.Death.YearOrZero(); y != 0 {
		death = fmt.Sprintf("%d", y)
	}
	if birth == "?" && death == "?" {
		return "—"
	}
	return birth + "–" + death
}

// pickPerson runs the interactive list when a name query matches more than
// one person. Returns nil without error when the user quits.
func pickPerson(persons []*pedigree.Person) (*pedigree.Person, error) {
	m := NewPersonListModel(persons)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := finalModel.(PersonListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil, nil
	}
	return fm.Selected, nil
}
