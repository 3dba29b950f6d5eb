package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listFailedStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// pqtreeModel is the bubbletea model for stepping through PQ-tree
// reductions one constraint at a time.
//
// Reductions are destructive and a failed one leaves the tree narrowed, so
// the model rebuilds the tree from scratch whenever the step changes. The
// trees are tiny; rebuild cost is irrelevant next to a keypress.
type pqtreeModel struct {
	labels      []string
	constraints [][]string

	step     int // constraints[0:step] are applied
	treeStr  string
	count    int
	failedAt int // index of the constraint that failed, -1 if none
	err      error
}

func newPQTreeModel(labels []string, constraints [][]string) pqtreeModel {
	m := pqtreeModel{labels: labels, constraints: constraints, failedAt: -1}
	m.rebuild()
	return m
}

// rebuild reconstructs the tree and applies the first step constraints.
func (m *pqtreeModel) rebuild() {
	m.failedAt = -1
	m.err = nil

	tree, keys, err := buildTree(m.labels)
	if err != nil {
		m.err = err
		return
	}
	for i := 0; i < m.step; i++ {
		if err := applyConstraint(tree, keys, m.constraints[i]); err != nil {
			m.failedAt = i
			m.err = err
			m.step = i
			// Rebuild up to the last good step; a failed reduction
			// leaves the tree unusable.
			tree, keys, _ = buildTree(m.labels)
			for j := 0; j < m.step; j++ {
				_ = applyConstraint(tree, keys, m.constraints[j])
			}
			break
		}
	}
	m.treeStr = tree.String()
	m.count = tree.PermutationCount()
}

func (m pqtreeModel) Init() tea.Cmd {
	return nil
}

func (m pqtreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", " ", "enter":
			if m.step < len(m.constraints) && m.failedAt == -1 {
				m.step++
				m.rebuild()
			}
		case "left", "h":
			if m.step > 0 {
				m.step--
				m.rebuild()
			}
		case "r":
			m.step = 0
			m.rebuild()
		}
	}
	return m, nil
}

func (m pqtreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("PQ-Tree Reduction"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ step  r reset  q quit"))
	b.WriteString("\n\n")

	b.WriteString(listDimStyle.Render("Constraints"))
	b.WriteString("\n")
	for i, constraint := range m.constraints {
		cursor := "  "
		if i == m.step && m.failedAt == -1 {
			cursor = "▸ "
		}
		line := cursor + strings.Join(constraint, ",")

		switch {
		case i == m.failedAt:
			b.WriteString(listFailedStyle.Render(line + "  " + iconError))
		case i < m.step:
			b.WriteString(listNormalStyle.Render(line + "  " + iconSuccess))
		case i == m.step:
			b.WriteString(listSelectedStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("Tree"))
	b.WriteString("\n  ")
	b.WriteString(StyleValue.Render(m.treeStr))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d permutations  [%d/%d constraints]",
		m.count, m.step, len(m.constraints))))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(listFailedStyle.Render(fmt.Sprintf("%s %v", iconError, m.err)))
		b.WriteString("\n")
	}

	return b.String()
}
