package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolshelf/toolshelf/internal/airtable"
)

/*
TestBuildFormula_Search verifies the search clause: lower-casing, quote
escaping, and the three-field OR match.
*/
func TestBuildFormula_Search(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		expected string
	}{
		{
			"plain_term",
			"Chemistry",
			"OR(FIND('chemistry', LOWER({Tool Name})), FIND('chemistry', LOWER({Description})), FIND('chemistry', LOWER({Category})))",
		},
		{
			"single_quote_escaped",
			"newton's laws",
			`OR(FIND('newton\'s laws', LOWER({Tool Name})), FIND('newton\'s laws', LOWER({Description})), FIND('newton\'s laws', LOWER({Category})))`,
		},
		{
			"only_quotes",
			"'''",
			`OR(FIND('\'\'\'', LOWER({Tool Name})), FIND('\'\'\'', LOWER({Description})), FIND('\'\'\'', LOWER({Category})))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formula := buildFormula(ListQuery{Search: tt.search})
			assert.Equal(t, tt.expected, formula)
		})
	}
}

/*
TestBuildFormula_Category verifies term splitting, trimming, empty-segment
dropping, and OR matching across terms.
*/
func TestBuildFormula_Category(t *testing.T) {
	tests := []struct {
		name     string
		category string
		expected string
	}{
		{
			"single_term",
			"VR",
			"FIND('VR', {Category})",
		},
		{
			"messy_whitespace_and_empties",
			" VR , ,History ",
			"OR(FIND('VR', {Category}), FIND('History', {Category}))",
		},
		{
			"quote_in_term",
			"Editor's Picks",
			`FIND('Editor\'s Picks', {Category})`,
		},
		{
			"all_empty_segments",
			" , , ",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formula := buildFormula(ListQuery{Category: tt.category})
			assert.Equal(t, tt.expected, formula)
		})
	}
}

/*
TestBuildFormula_Combination verifies the AND/alone/none combination rules
for the search and category clauses.
*/
func TestBuildFormula_Combination(t *testing.T) {
	t.Run("both_clauses_joined_with_and", func(t *testing.T) {
		formula := buildFormula(ListQuery{Search: "map", Category: "Geography,History"})
		assert.Equal(t,
			"AND(OR(FIND('map', LOWER({Tool Name})), FIND('map', LOWER({Description})), FIND('map', LOWER({Category}))), "+
				"OR(FIND('Geography', {Category}), FIND('History', {Category})))",
			formula,
		)
	})

	t.Run("no_parameters_means_no_filter", func(t *testing.T) {
		assert.Empty(t, buildFormula(ListQuery{}))
	})
}

/*
TestBuildSort verifies the sort whitelist and the silent fallbacks for
unknown fields and directions.
*/
func TestBuildSort(t *testing.T) {
	tests := []struct {
		name          string
		sortBy        string
		sortOrder     string
		wantField     string
		wantDirection string
	}{
		{"defaults", "", "", "Tool Name", "asc"},
		{"title_asc", "title", "asc", "Tool Name", "asc"},
		{"rating_desc", "rating", "desc", "Rating", "desc"},
		{"unknown_field_falls_back", "price", "desc", "Tool Name", "desc"},
		{"unknown_order_falls_back", "rating", "descending", "Rating", "asc"},
		{"case_sensitive_order", "title", "DESC", "Tool Name", "asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sort := buildSort(ListQuery{SortBy: tt.sortBy, SortOrder: tt.sortOrder})
			require.Len(t, sort, 1)
			assert.Equal(t, tt.wantField, sort[0].Field)
			assert.Equal(t, tt.wantDirection, sort[0].Direction)
		})
	}
}

/*
TestNormalize verifies the total mapping from the store's untyped field bag
to the canonical Tool shape.
*/
func TestNormalize(t *testing.T) {
	t.Run("full_record", func(t *testing.T) {
		record := airtable.Record{
			ID: "recABC123",
			Fields: map[string]any{
				"Tool Name":   "Star Atlas",
				"Description": "Interactive sky map",
				"URL":         "https://example.com/atlas",
				"Category":    "Science, VR",
				"Rating":      4.5,
				"Image URL":   "https://example.com/atlas.png",
				"Author":      "J. Kepler",
			},
		}

		normalized := normalize(record)

		assert.Equal(t, "recABC123", normalized.ID)
		assert.Equal(t, "Star Atlas", normalized.Name)
		assert.Equal(t, "Interactive sky map", normalized.Description)
		assert.Equal(t, "https://example.com/atlas", normalized.URL)
		assert.Equal(t, "Science, VR", normalized.Category)
		require.NotNil(t, normalized.Rating)
		assert.Equal(t, 4.5, *normalized.Rating)
		assert.Equal(t, "https://example.com/atlas.png", normalized.ImageURL)
		assert.Equal(t, "J. Kepler", normalized.Author)
	})

	t.Run("missing_fields_take_defaults", func(t *testing.T) {
		normalized := normalize(airtable.Record{ID: "recEmpty", Fields: map[string]any{}})

		assert.Equal(t, "Untitled tool", normalized.Name)
		assert.Empty(t, normalized.Description)
		assert.Empty(t, normalized.URL)
		assert.Empty(t, normalized.Category)
		assert.Nil(t, normalized.Rating)
		assert.Empty(t, normalized.ImageURL)
	})

	t.Run("zero_rating_is_not_absent", func(t *testing.T) {
		normalized := normalize(airtable.Record{
			ID:     "recZero",
			Fields: map[string]any{"Rating": 0.0},
		})

		require.NotNil(t, normalized.Rating)
		assert.Equal(t, 0.0, *normalized.Rating)
	})

	t.Run("unknown_and_mistyped_fields_are_dropped", func(t *testing.T) {
		normalized := normalize(airtable.Record{
			ID: "recOdd",
			Fields: map[string]any{
				"Tool Name": 42,            // wrong type
				"Rating":    "five",        // wrong type
				"Internal":  "store-noise", // unknown column
			},
		})

		assert.Equal(t, "Untitled tool", normalized.Name)
		assert.Nil(t, normalized.Rating)
	})
}

/*
TestEffectiveSort verifies the ListQuery whitelist helpers directly.
*/
func TestEffectiveSort(t *testing.T) {
	assert.Equal(t, SortByTitle, ListQuery{}.EffectiveSortBy())
	assert.Equal(t, SortByTitle, ListQuery{SortBy: "nonsense"}.EffectiveSortBy())
	assert.Equal(t, SortByRating, ListQuery{SortBy: "rating"}.EffectiveSortBy())

	assert.Equal(t, SortOrderAsc, ListQuery{}.EffectiveSortOrder())
	assert.Equal(t, SortOrderAsc, ListQuery{SortOrder: "Desc"}.EffectiveSortOrder())
	assert.Equal(t, SortOrderDesc, ListQuery{SortOrder: "desc"}.EffectiveSortOrder())
}
