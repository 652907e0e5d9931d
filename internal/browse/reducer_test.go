package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolshelf/toolshelf/pkg/toolclient"
)

/*
TestFilterState_DebounceBurst verifies the core debounce property: a rapid
sequence of keystrokes yields exactly one settled change, carrying the final
keystroke's text.
*/
func TestFilterState_DebounceBurst(t *testing.T) {
	state := NewFilterState()

	// Simulate a burst of keystrokes; each returns a settlement token.
	tokens := []int{
		state.SetRawSearch("c"),
		state.SetRawSearch("ch"),
		state.SetRawSearch("che"),
		state.SetRawSearch("chem"),
	}

	// Every stale token's settlement is a no-op.
	for _, token := range tokens[:len(tokens)-1] {
		assert.False(t, state.SettleSearch(token))
		assert.Empty(t, state.DebouncedSearch())
	}

	// Only the final token commits, exactly once.
	assert.True(t, state.SettleSearch(tokens[len(tokens)-1]))
	assert.Equal(t, "chem", state.DebouncedSearch())

	// Re-settling the same token is a no-op: the term did not change again.
	assert.False(t, state.SettleSearch(tokens[len(tokens)-1]))
}

/*
TestFilterState_DebounceNoOpEdit verifies that typing and deleting back to
the already-settled text does not report a change.
*/
func TestFilterState_DebounceNoOpEdit(t *testing.T) {
	state := NewFilterState()

	token := state.SetRawSearch("vr")
	require.True(t, state.SettleSearch(token))

	state.SetRawSearch("vrr")
	token = state.SetRawSearch("vr")
	assert.False(t, state.SettleSearch(token))
	assert.Equal(t, "vr", state.DebouncedSearch())
}

/*
TestFilterState_CategoryToggles verifies toggle-on/toggle-off behaviour and
the ordered-by-selection comma-joined derivation.
*/
func TestFilterState_CategoryToggles(t *testing.T) {
	state := NewFilterState()

	// Two on, one off: the derived parameter is the remaining selection.
	state.ToggleCategory("VR")
	state.ToggleCategory("History")
	assert.Equal(t, "VR,History", state.CategoryParam())

	state.ToggleCategory("VR")
	assert.Equal(t, "History", state.CategoryParam())
	assert.False(t, state.IsSelected("VR"))
	assert.True(t, state.IsSelected("History"))

	// Re-selecting appends at the end again.
	state.ToggleCategory("VR")
	assert.Equal(t, "History,VR", state.CategoryParam())

	// Empty selection omits the parameter entirely.
	state.ToggleCategory("VR")
	state.ToggleCategory("History")
	assert.Empty(t, state.CategoryParam())
}

/*
TestFilterState_SortTokens verifies the fixed token set, the default, and
the field/direction decomposition.
*/
func TestFilterState_SortTokens(t *testing.T) {
	state := NewFilterState()
	assert.Equal(t, SortTitleAsc, state.SortToken())

	state.SetSortToken(SortRatingDesc)
	params := state.Params()
	assert.Equal(t, "rating", params.SortBy)
	assert.Equal(t, "desc", params.SortOrder)

	// Unknown tokens are ignored.
	state.SetSortToken("price-desc")
	assert.Equal(t, SortRatingDesc, state.SortToken())

	// Cycling walks the fixed enumerated set and wraps around.
	state.SetSortToken(SortRatingAsc)
	state.CycleSort()
	assert.Equal(t, SortTitleAsc, state.SortToken())
}

/*
TestFilterState_Params verifies the full canonical parameter derivation.
*/
func TestFilterState_Params(t *testing.T) {
	state := NewFilterState()

	token := state.SetRawSearch("atlas")
	require.True(t, state.SettleSearch(token))
	state.ToggleCategory("Science")
	state.ToggleCategory("VR")
	state.SetSortToken(SortTitleDesc)

	assert.Equal(t, toolclient.Params{
		Search:    "atlas",
		Category:  "Science,VR",
		SortBy:    "title",
		SortOrder: "desc",
	}, state.Params())
}

/*
TestFilterState_Signature verifies that only settled search changes,
category changes, and sort changes move the signature — raw keystrokes do
not.
*/
func TestFilterState_Signature(t *testing.T) {
	state := NewFilterState()
	baseline := state.Signature()

	// Raw keystrokes leave the signature untouched.
	token := state.SetRawSearch("x")
	assert.Equal(t, baseline, state.Signature())

	// Settlement moves it.
	require.True(t, state.SettleSearch(token))
	afterSearch := state.Signature()
	assert.NotEqual(t, baseline, afterSearch)

	// Category and sort changes move it immediately.
	state.ToggleCategory("VR")
	afterCategory := state.Signature()
	assert.NotEqual(t, afterSearch, afterCategory)

	state.CycleSort()
	assert.NotEqual(t, afterCategory, state.Signature())
}
