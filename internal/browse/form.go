package browse

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/toolshelf/toolshelf/pkg/toolclient"
)

// formFields are the submission inputs in display order. The labels double
// as the wire field names, so server-side validation details map onto
// inputs without translation.
var formFields = []string{"Tool Name", "URL", "Description", "Category", "Image URL"}

// submitForm is the state of the "suggest a tool" screen.
type submitForm struct {
	inputs      []textinput.Model
	focused     int
	fieldErrors map[string]string
	alert       string
	submitting  bool
}

func newSubmitForm() submitForm {
	inputs := make([]textinput.Model, len(formFields))
	for i, label := range formFields {
		input := textinput.New()
		input.Placeholder = label
		input.CharLimit = 200
		input.Width = 48
		inputs[i] = input
	}
	return submitForm{inputs: inputs}
}

func (f *submitForm) focusFirst() tea.Cmd {
	f.focused = 0
	return f.inputs[0].Focus()
}

// updateForm handles keystrokes while the submission form is open.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil

	case "tab", "down":
		return m, m.form.focusField((m.form.focused + 1) % len(m.form.inputs))

	case "shift+tab", "up":
		return m, m.form.focusField((m.form.focused + len(m.form.inputs) - 1) % len(m.form.inputs))

	case "enter":
		if m.form.focused < len(m.form.inputs)-1 {
			return m, m.form.focusField(m.form.focused + 1)
		}
		return m.submitForm()

	case "ctrl+s":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focused], cmd = m.form.inputs[m.form.focused].Update(msg)
	return m, cmd
}

func (f *submitForm) focusField(index int) tea.Cmd {
	f.inputs[f.focused].Blur()
	f.focused = index
	return f.inputs[index].Focus()
}

// submission collects the inputs into the wire payload.
func (f *submitForm) submission() toolclient.Submission {
	return toolclient.Submission{
		Name:        f.inputs[0].Value(),
		URL:         f.inputs[1].Value(),
		Description: f.inputs[2].Value(),
		Category:    f.inputs[3].Value(),
		ImageURL:    f.inputs[4].Value(),
	}
}

// submitForm sends the submission. Validation runs server-side; the form
// renders whatever details come back.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	m.form.submitting = true
	m.form.fieldErrors = nil
	m.form.alert = ""

	payload := m.form.submission()
	client := m.client
	return m, func() tea.Msg {
		created, err := client.SubmitTool(context.Background(), payload)
		return submitDoneMsg{tool: created, err: err}
	}
}
