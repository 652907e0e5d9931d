/*
Package browse implements the interactive directory browser.

Its core is the filter state reducer: three independent pieces of UI state
(free-text search, category toggles, sort selection) reduced into the
canonical request parameter set, with search changes debounced so that a
burst of keystrokes produces exactly one fetch.

The bubbletea program in model.go is the cooperative single-threaded event
loop around the reducer; the reducer itself is plain state with no timer or
I/O dependencies, so it is tested without the terminal runtime.
*/
package browse

import (
	"strings"
	"time"

	"github.com/toolshelf/toolshelf/pkg/toolclient"
)

// DebounceInterval is the quiet period after the last keystroke before the
// search term settles and a fetch may fire.
const DebounceInterval = 400 * time.Millisecond

// Sort tokens encode field and direction in a single selector value.
const (
	SortTitleAsc   = "title-asc"
	SortTitleDesc  = "title-desc"
	SortRatingDesc = "rating-desc"
	SortRatingAsc  = "rating-asc"
)

// SortTokens is the fixed cycle order of the sort selector.
var SortTokens = []string{SortTitleAsc, SortTitleDesc, SortRatingDesc, SortRatingAsc}

// FilterState accumulates search text, category toggles, and the sort token
// into the minimal canonical parameter set.
//
// # Debounce
//
// Raw search edits bump a generation counter and return a token. The caller
// schedules a settlement callback for that token after [DebounceInterval];
// a settlement only commits when its token is still current, so every edit
// cancels all previously pending settlements. This is the cooperative timer
// abstraction: reset-before-elapse reschedules, and only the final token of
// a burst survives.
type FilterState struct {
	rawSearch string
	debounced string
	searchGen int

	selected map[string]bool
	order    []string

	sortToken string
}

// NewFilterState returns a reducer with no search text, no selected
// categories, and the default sort (title ascending).
func NewFilterState() *FilterState {
	return &FilterState{
		selected:  make(map[string]bool),
		sortToken: SortTitleAsc,
	}
}

// # Search

// SetRawSearch records a keystroke's text and invalidates any pending
// settlement. It returns the token the caller must present to
// [FilterState.SettleSearch] after the quiet interval.
func (state *FilterState) SetRawSearch(text string) int {
	state.rawSearch = text
	state.searchGen++
	return state.searchGen
}

// RawSearch returns the text as typed, for rendering the input box only.
func (state *FilterState) RawSearch() string {
	return state.rawSearch
}

// SettleSearch commits the raw text as the debounced term if token is still
// current. It reports whether the debounced term actually changed — the
// caller fetches only on true, so stale settlements and no-op edits (e.g.
// typing then deleting back to the same text) never fetch.
func (state *FilterState) SettleSearch(token int) bool {
	if token != state.searchGen {
		return false
	}
	if state.debounced == state.rawSearch {
		return false
	}
	state.debounced = state.rawSearch
	return true
}

// DebouncedSearch returns the settled search term used for requests.
func (state *FilterState) DebouncedSearch() string {
	return state.debounced
}

// # Categories

// ToggleCategory flips a category's selected state. Selection order is
// preserved for the derived parameter; re-selecting a category appends it
// at the end again.
func (state *FilterState) ToggleCategory(name string) {
	if state.selected[name] {
		delete(state.selected, name)
		for i, existing := range state.order {
			if existing == name {
				state.order = append(state.order[:i], state.order[i+1:]...)
				break
			}
		}
		return
	}
	state.selected[name] = true
	state.order = append(state.order, name)
}

// IsSelected reports whether a category is currently toggled on.
func (state *FilterState) IsSelected(name string) bool {
	return state.selected[name]
}

// CategoryParam projects the toggles down to the ordered-by-selection list
// of selected names, comma-joined. Empty selection yields "" (parameter
// omitted entirely).
func (state *FilterState) CategoryParam() string {
	return strings.Join(state.order, ",")
}

// # Sorting

// SetSortToken selects a sort token. Unknown tokens are ignored.
func (state *FilterState) SetSortToken(token string) {
	for _, known := range SortTokens {
		if token == known {
			state.sortToken = token
			return
		}
	}
}

// CycleSort advances the sort selector to the next token in [SortTokens].
func (state *FilterState) CycleSort() {
	for i, known := range SortTokens {
		if state.sortToken == known {
			state.sortToken = SortTokens[(i+1)%len(SortTokens)]
			return
		}
	}
	state.sortToken = SortTokens[0]
}

// SortToken returns the current sort selector value.
func (state *FilterState) SortToken() string {
	return state.sortToken
}

// # Derivation

// Params decomposes the reducer's state into the canonical request
// parameter set: the settled search term, the comma-joined category
// selection, and the sort token split into field and direction.
func (state *FilterState) Params() toolclient.Params {
	field, direction, _ := strings.Cut(state.sortToken, "-")
	return toolclient.Params{
		Search:    state.debounced,
		Category:  state.CategoryParam(),
		SortBy:    field,
		SortOrder: direction,
	}
}

// Signature is a canonical encoding of the fetch-relevant state. A fetch is
// issued exactly when the signature changes: the debounced term, the derived
// category string, or the sort token — never raw keystrokes.
func (state *FilterState) Signature() string {
	return state.debounced + "\x00" + state.CategoryParam() + "\x00" + state.sortToken
}
