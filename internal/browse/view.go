package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/toolshelf/toolshelf/pkg/toolclient"
)

// placeholderImage is shown on cards and detail pages when the record has no
// thumbnail reference.
const placeholderImage = "(no image)"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(60)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("205"))

	cardNameStyle = lipgloss.NewStyle().Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	fieldErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(1, 0, 0, 1)
)

// View renders the active screen.
func (m Model) View() string {
	switch m.mode {
	case modeDetail:
		return m.viewDetail()
	case modeForm:
		return m.viewForm()
	default:
		return m.viewList()
	}
}

// # List Screen

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Toolshelf"))
	b.WriteString("\n\n")

	b.WriteString(" " + m.searchInput.View() + "\n")
	b.WriteString(" " + m.viewFilters() + "\n\n")

	if m.alert != "" {
		b.WriteString(alertStyle.Render(" "+m.alert) + "\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(dimStyle.Render(" Loading...") + "\n")
	case len(m.tools) == 0:
		b.WriteString(dimStyle.Render(" No tools match the current filters.") + "\n")
	default:
		for i, entry := range m.tools {
			style := cardStyle
			if i == m.cursor {
				style = selectedCardStyle
			}
			b.WriteString(style.Render(renderCard(entry)) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("/: search  1-8: categories  s: sort  ↑/↓: move  enter: detail  n: suggest  q: quit"))
	return b.String()
}

// viewFilters renders the category checkboxes and the sort selector.
func (m Model) viewFilters() string {
	parts := make([]string, 0, len(Categories)+1)
	for i, category := range Categories {
		box := "[ ]"
		style := dimStyle
		if m.filters.IsSelected(category) {
			box = "[x]"
			style = checkedStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("%d %s %s", i+1, box, category)))
	}
	parts = append(parts, dimStyle.Render("sort: "+m.filters.SortToken()))
	return strings.Join(parts, "  ")
}

func renderCard(entry toolclient.Tool) string {
	var b strings.Builder
	b.WriteString(cardNameStyle.Render(entry.Name))
	if entry.Rating != nil {
		b.WriteString("  " + dimStyle.Render(fmt.Sprintf("★ %.1f", *entry.Rating)))
	}
	b.WriteString("\n")
	if entry.Category != "" {
		b.WriteString(dimStyle.Render(entry.Category) + "\n")
	}
	b.WriteString(truncate(entry.Description, 110))
	return b.String()
}

// # Detail Screen

func (m Model) viewDetail() string {
	if m.detail == nil {
		return dimStyle.Render("Loading...")
	}
	entry := *m.detail

	var b strings.Builder
	b.WriteString(titleStyle.Render(entry.Name) + "\n\n")

	image := entry.ImageURL
	if image == "" {
		image = placeholderImage
	}
	b.WriteString(" " + dimStyle.Render(image) + "\n\n")

	if entry.Category != "" {
		b.WriteString(" Category: " + entry.Category + "\n")
	}
	if entry.Rating != nil {
		b.WriteString(fmt.Sprintf(" Rating:   %.1f\n", *entry.Rating))
	}
	if entry.Author != "" {
		b.WriteString(" Author:   " + entry.Author + "\n")
	}
	if entry.URL != "" {
		b.WriteString(" Link:     " + entry.URL + "\n")
	}
	b.WriteString("\n " + entry.Description + "\n")

	b.WriteString(helpStyle.Render("esc: back  q: back"))
	return b.String()
}

// # Submission Form

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Suggest a tool") + "\n\n")

	if m.form.alert != "" {
		b.WriteString(alertStyle.Render(" "+m.form.alert) + "\n\n")
	}

	for i, label := range formFields {
		b.WriteString(" " + label + "\n")
		b.WriteString(" " + m.form.inputs[i].View() + "\n")
		if message, failed := m.form.fieldErrors[label]; failed {
			b.WriteString(" " + fieldErrorStyle.Render(message) + "\n")
		}
		b.WriteString("\n")
	}

	if m.form.submitting {
		b.WriteString(dimStyle.Render(" Submitting...") + "\n")
	}

	b.WriteString(helpStyle.Render("tab: next field  enter/ctrl+s: submit  esc: cancel"))
	return b.String()
}

// # Helpers

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit-3] + "..."
}
