/*
Package tool defines the core domain of the Toolshelf directory.

It manages listing records (tools/resources) owned by the external record
store: discovery via free-text search, category filtering and sorting, single
record retrieval, and community submissions.

Core Responsibility:

  - Catalogue: The canonical normalized Tool shape returned by every read path.
  - Discovery: The canonical query parameter set (search, category, sort).
  - Intake: Submission validation before any store call.

This package acts as the source of truth for all listing-related data models.
*/
package tool

// # Sorting

const (
	// SortByTitle sorts on the tool's display name. It is the default and
	// the fallback for any unrecognised sortBy value.
	SortByTitle = "title"

	// SortByRating sorts on the numeric rating.
	SortByRating = "rating"

	// SortOrderAsc is the default sort direction.
	SortOrderAsc = "asc"

	// SortOrderDesc must match exactly; any other value falls back to asc.
	SortOrderDesc = "desc"
)

// Tool is one entry in the directory, normalized from the store's row shape.
//
// The store assigns ID; it is never produced client-side. Rating is a
// pointer so that an absent score is distinguishable from a zero score.
type Tool struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Rating      *float64 `json:"rating,omitempty"`
	ImageURL    string   `json:"imageUrl"`
	Author      string   `json:"author"`
}

// Submission is the payload for creating a new listing. The JSON field names
// mirror the store's column names, so a valid submission body doubles as the
// record's fields object.
type Submission struct {
	Name        string `json:"Tool Name"`
	URL         string `json:"URL"`
	Description string `json:"Description"`
	Category    string `json:"Category"`
	ImageURL    string `json:"Image URL,omitempty"`
}

// ListQuery is the canonical request shape consumed by the query translator.
//
// It is constructed fresh per request and never persisted. All fields are
// optional; zero values mean "no filter" and default sorting.
type ListQuery struct {
	// Search is a free-text term matched case-insensitively as a substring
	// against name, description, and category (OR across the three).
	Search string

	// Category is a comma-separated term list; a record matches ANY term,
	// and the category clause ANDs with the search clause.
	Category string

	// SortBy is validated against {title, rating}; anything else is title.
	SortBy string

	// SortOrder is desc only on an exact match; anything else is asc.
	SortOrder string
}

// EffectiveSortBy returns the whitelisted sort field, falling back to
// [SortByTitle] for absent or unrecognised values.
func (q ListQuery) EffectiveSortBy() string {
	if q.SortBy == SortByRating {
		return SortByRating
	}
	return SortByTitle
}

// EffectiveSortOrder returns [SortOrderDesc] only when SortOrder matches it
// exactly, and [SortOrderAsc] otherwise.
func (q ListQuery) EffectiveSortOrder() string {
	if q.SortOrder == SortOrderDesc {
		return SortOrderDesc
	}
	return SortOrderAsc
}
