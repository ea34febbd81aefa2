package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// =============================================================================
// PickModel - Interactive disambiguation
// =============================================================================

// Candidate is one entity offered by the picker.
type Candidate struct {
	IRI   string
	Label string
	Kind  string
}

// PickModel is the bubbletea model for choosing among the entities an
// ambiguous identifier matched.
type PickModel struct {
	Ref        string
	Candidates []Candidate
	Cursor     int
	Selected   *Candidate
	Height     int
	Offset     int
}

// NewPickModel creates a picker over the candidates of amb, described
// through f.
func NewPickModel(f ontology.Facade, amb *errors.AmbiguousError) PickModel {
	cands := make([]Candidate, len(amb.Candidates))
	for i, iri := range amb.Candidates {
		cands[i] = Candidate{IRI: iri}
		id, err := f.Lookup(iri)
		if err != nil {
			continue
		}
		if e, ok := f.Entity(id); ok {
			cands[i].Label = e.Label
			cands[i].Kind = e.Kind.String()
		}
	}
	return PickModel{Ref: amb.Ref, Candidates: cands, Height: 15}
}

func (m PickModel) Init() tea.Cmd {
	return nil
}

func (m PickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			c := m.Candidates[m.Cursor]
			m.Selected = &c
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

func (m PickModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%q is ambiguous", m.Ref)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Candidates))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Candidates[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		label := c.Label
		if label == "" {
			label = "—"
		}
		rows = append(rows, []string{cursor, c.IRI, label, c.Kind})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "IRI", "Label", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return StyleDim
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Candidates))))

	return b.String()
}

// runPicker runs the picker program to completion. Tests replace it.
var runPicker = func(m PickModel) (PickModel, error) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return m, err
	}
	return final.(PickModel), nil
}

// pickCandidate asks the user to choose one of amb's candidates and returns
// its IRI. Quitting without a choice returns amb itself.
func pickCandidate(f ontology.Facade, amb *errors.AmbiguousError) (string, error) {
	m, err := runPicker(NewPickModel(f, amb))
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}
	if m.Selected == nil {
		return "", amb
	}
	return m.Selected.IRI, nil
}
