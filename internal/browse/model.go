package browse

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/toolshelf/toolshelf/pkg/toolclient"
)

// Categories are the toggleable filter checkboxes shown in the sidebar.
var Categories = []string{"AI", "Coding", "Geography", "History", "Language", "Math", "Science", "VR"}

// mode selects which screen the browser renders.
type mode int

const (
	modeList mode = iota
	modeDetail
	modeForm
)

// # Messages

// searchSettledMsg arrives [DebounceInterval] after a keystroke, carrying
// the generation token of that keystroke.
type searchSettledMsg struct {
	token int
}

// toolsFetchedMsg carries a completed list fetch. In-flight fetches are not
// cancelled; whichever response arrives last is rendered (last-write-wins),
// which is acceptable because list requests are idempotent reads keyed only
// by the current filter state.
type toolsFetchedMsg struct {
	tools []toolclient.Tool
	err   error
}

// detailFetchedMsg carries a completed single-record fetch.
type detailFetchedMsg struct {
	tool *toolclient.Tool
	err  error
}

// submitDoneMsg carries the outcome of a submission.
type submitDoneMsg struct {
	tool *toolclient.Tool
	err  error
}

// # Model

// Model is the bubbletea program state for the directory browser.
type Model struct {
	client  *toolclient.Client
	filters *FilterState

	searchInput textinput.Model
	searching   bool

	tools   []toolclient.Tool
	cursor  int
	loading bool
	alert   string

	mode   mode
	detail *toolclient.Tool
	form   submitForm

	// lastFetched is the signature of the most recently issued fetch; a new
	// fetch is issued only when the reducer's signature moves past it.
	lastFetched string

	width  int
	height int
}

// NewModel constructs the browser against the given API client.
func NewModel(client *toolclient.Client) Model {
	input := textinput.New()
	input.Placeholder = "Search tools..."
	input.CharLimit = 120
	input.Width = 40

	filters := NewFilterState()
	return Model{
		client:      client,
		filters:     filters,
		searchInput: input,
		form:        newSubmitForm(),
		loading:     true,
		lastFetched: filters.Signature(),
	}
}

// Init issues the initial unfiltered fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchTools(), textinput.Blink)
}

// Update is the single-threaded event loop step.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case searchSettledMsg:
		// Only the final keystroke of a burst carries the current token.
		if m.filters.SettleSearch(msg.token) {
			return m, m.maybeFetch()
		}
		return m, nil

	case toolsFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = msg.err.Error()
			return m, nil
		}
		m.alert = ""
		m.tools = msg.tools
		if m.cursor >= len(m.tools) {
			m.cursor = 0
		}
		return m, nil

	case detailFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = msg.err.Error()
			m.mode = modeList
			return m, nil
		}
		m.detail = msg.tool
		m.mode = modeDetail
		return m, nil

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keystrokes by screen and search focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case modeDetail:
		switch msg.String() {
		case "esc", "backspace", "q":
			m.mode = modeList
			m.detail = nil
		}
		return m, nil

	case modeForm:
		return m.updateForm(msg)
	}

	// List mode. While the search box is focused every printable key is a
	// keystroke into it; raw keystrokes never fetch, they only arm the
	// debounce timer.
	if m.searching {
		switch msg.String() {
		case "esc", "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)

		if m.searchInput.Value() != m.filters.RawSearch() {
			token := m.filters.SetRawSearch(m.searchInput.Value())
			settle := tea.Tick(DebounceInterval, func(time.Time) tea.Msg {
				return searchSettledMsg{token: token}
			})
			return m, tea.Batch(cmd, settle)
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		return m, m.searchInput.Focus()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.tools)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if m.cursor < len(m.tools) {
			id := m.tools[m.cursor].ID
			m.loading = true
			return m, m.fetchDetail(id)
		}
		return m, nil

	case "s":
		// Sort selection changes take effect immediately, no debounce.
		m.filters.CycleSort()
		return m, m.maybeFetch()

	case "n":
		m.mode = modeForm
		m.form = newSubmitForm()
		return m, m.form.focusFirst()

	case "1", "2", "3", "4", "5", "6", "7", "8":
		index := int(msg.String()[0] - '1')
		if index < len(Categories) {
			// Checkbox toggles fetch immediately, no debounce.
			m.filters.ToggleCategory(Categories[index])
			return m, m.maybeFetch()
		}
		return m, nil
	}

	return m, nil
}

// handleSubmitDone maps submission outcomes onto the form: 400 details
// become field-level errors, anything else a general alert.
func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	m.form.submitting = false

	if msg.err != nil {
		if apiErr, ok := msg.err.(*toolclient.APIError); ok && apiErr.IsValidation() {
			m.form.fieldErrors = apiErr.Details
			m.form.alert = apiErr.Message
			return m, nil
		}
		m.form.alert = msg.err.Error()
		return m, nil
	}

	m.mode = modeList
	m.alert = ""
	m.loading = true
	// Force a refetch so the new entry appears regardless of filters.
	m.lastFetched = ""
	return m, m.maybeFetch()
}

// # Fetching

// maybeFetch issues a list fetch only when the reducer's signature has
// changed since the last issued fetch.
func (m *Model) maybeFetch() tea.Cmd {
	signature := m.filters.Signature()
	if signature == m.lastFetched {
		return nil
	}
	m.lastFetched = signature
	m.loading = true
	return m.fetchTools()
}

func (m Model) fetchTools() tea.Cmd {
	params := m.filters.Params()
	client := m.client
	return func() tea.Msg {
		tools, err := client.ListTools(context.Background(), params)
		return toolsFetchedMsg{tools: tools, err: err}
	}
}

func (m Model) fetchDetail(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		found, err := client.GetTool(context.Background(), id)
		return detailFetchedMsg{tool: found, err: err}
	}
}
