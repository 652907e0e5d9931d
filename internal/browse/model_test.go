package browse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolshelf/toolshelf/pkg/toolclient"
)

func newTestModel() Model {
	return NewModel(toolclient.New("http://127.0.0.1:1"))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

/*
TestModel_DebouncedSearchFetchesOnce verifies the re-fetch trigger rule for
search: a burst of keystrokes arms one settlement per keystroke, but only
the settlement carrying the final keystroke's token issues a fetch.
*/
func TestModel_DebouncedSearchFetchesOnce(t *testing.T) {
	m := newTestModel()

	// Focus the search box.
	m, _ = update(t, m, keyMsg("/"))
	require.True(t, m.searching)

	// Rapid keystrokes: each returns a command (input echo + armed timer)
	// but none fetches directly.
	m, cmd := update(t, m, keyMsg("v"))
	require.NotNil(t, cmd)
	m, cmd = update(t, m, keyMsg("r"))
	require.NotNil(t, cmd)
	require.Equal(t, "vr", m.filters.RawSearch())

	finalToken := m.filters.searchGen

	// A stale settlement (from the first keystroke's timer) is a no-op.
	m, cmd = update(t, m, searchSettledMsg{token: finalToken - 1})
	assert.Nil(t, cmd)
	assert.Empty(t, m.filters.DebouncedSearch())

	// The final settlement commits and fetches exactly once.
	m, cmd = update(t, m, searchSettledMsg{token: finalToken})
	assert.NotNil(t, cmd)
	assert.Equal(t, "vr", m.filters.DebouncedSearch())

	// Delivering it again does not fetch again.
	_, cmd = update(t, m, searchSettledMsg{token: finalToken})
	assert.Nil(t, cmd)
}

/*
TestModel_CategoryTogglesFetchImmediately verifies that checkbox toggles
fetch on every change, with no debounce, and derive the comma-joined
parameter from the remaining selection.
*/
func TestModel_CategoryTogglesFetchImmediately(t *testing.T) {
	m := newTestModel()

	// Toggle two categories on: a fetch per toggle.
	m, cmd := update(t, m, keyMsg("1"))
	assert.NotNil(t, cmd)
	m, cmd = update(t, m, keyMsg("4"))
	assert.NotNil(t, cmd)
	assert.Equal(t, Categories[0]+","+Categories[3], m.filters.CategoryParam())

	// Toggle one off: fetches again, parameter shrinks to the remainder.
	m, cmd = update(t, m, keyMsg("1"))
	assert.NotNil(t, cmd)
	assert.Equal(t, Categories[3], m.filters.CategoryParam())

	// Re-delivering identical state does not fetch (signature unchanged).
	_, cmd = update(t, m, searchSettledMsg{token: m.filters.searchGen})
	assert.Nil(t, cmd)
}

/*
TestModel_SortCycleFetches verifies the sort selector fetches immediately on
change.
*/
func TestModel_SortCycleFetches(t *testing.T) {
	m := newTestModel()

	m, cmd := update(t, m, keyMsg("s"))
	assert.NotNil(t, cmd)
	assert.Equal(t, SortTitleDesc, m.filters.SortToken())
}

/*
TestModel_LastWriteWins verifies that the most recent completed response is
what renders: an earlier slow fetch arriving after a later fast one simply
overwrites the visible result set.
*/
func TestModel_LastWriteWins(t *testing.T) {
	m := newTestModel()

	fast := []toolclient.Tool{{ID: "rec-fast"}}
	slow := []toolclient.Tool{{ID: "rec-slow"}}

	m, _ = update(t, m, toolsFetchedMsg{tools: fast})
	assert.Equal(t, "rec-fast", m.tools[0].ID)

	m, _ = update(t, m, toolsFetchedMsg{tools: slow})
	assert.Equal(t, "rec-slow", m.tools[0].ID)
}

/*
TestModel_FetchErrorShowsAlert verifies that a failed fetch surfaces as a
general-purpose alert without dropping the previous result set handling.
*/
func TestModel_FetchErrorShowsAlert(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, toolsFetchedMsg{err: assert.AnError})
	assert.NotEmpty(t, m.alert)
	assert.False(t, m.loading)
}

/*
TestModel_SubmitValidationErrors verifies that a 400 response's details map
lands on the form as field-level errors while other failures become a
general alert.
*/
func TestModel_SubmitValidationErrors(t *testing.T) {
	m := newTestModel()
	m.mode = modeForm

	validation := &toolclient.APIError{
		StatusCode: 400,
		Message:    "Validation failed",
		Details:    map[string]string{"URL": "Must be a valid URL"},
	}
	m, _ = update(t, m, submitDoneMsg{err: validation})
	assert.Equal(t, modeForm, m.mode)
	assert.Equal(t, "Must be a valid URL", m.form.fieldErrors["URL"])

	m, _ = update(t, m, submitDoneMsg{err: assert.AnError})
	assert.Equal(t, modeForm, m.mode)
	assert.NotEmpty(t, m.form.alert)
}
