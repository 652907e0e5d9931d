package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/toolshelf/toolshelf/internal/airtable"
	"github.com/toolshelf/toolshelf/internal/platform/apperr"
	"github.com/toolshelf/toolshelf/pkg/query"
)

// Store column names. The hosted base uses human-readable column headers, so
// every mapping between the canonical Tool shape and the store goes through
// these constants.
const (
	colName        = "Tool Name"
	colDescription = "Description"
	colURL         = "URL"
	colCategory    = "Category"
	colRating      = "Rating"
	colImageURL    = "Image URL"
	colAuthor      = "Author"
)

// placeholderName is substituted on read when the store cell is empty.
const placeholderName = "Untitled tool"

// projection is the fixed field set requested from the store on every read.
var projection = []string{
	colName, colDescription, colURL, colCategory, colRating, colImageURL, colAuthor,
}

// AirtableRepository implements [Repository] against the hosted record store.
//
// It is the query translator: client-supplied [ListQuery] values become a
// store filter formula plus a sort specification, and every record coming
// back is normalized before it leaves this type.
type AirtableRepository struct {
	client *airtable.Client
}

// NewAirtableRepository wraps a store client in the [Repository] interface.
func NewAirtableRepository(client *airtable.Client) *AirtableRepository {
	return &AirtableRepository{client: client}
}

// List translates the query into a store formula and retrieves all matching
// pages.
func (repo *AirtableRepository) List(ctx context.Context, listQuery ListQuery) ([]Tool, error) {
	records, err := repo.client.ListRecords(ctx, airtable.ListOptions{
		Formula: buildFormula(listQuery),
		Sort:    buildSort(listQuery),
		Fields:  projection,
	})
	if err != nil {
		return nil, apperr.Upstream(err)
	}

	tools := make([]Tool, 0, len(records))
	for _, record := range records {
		tools = append(tools, normalize(record))
	}
	return tools, nil
}

// GetByID retrieves and normalizes a single record.
func (repo *AirtableRepository) GetByID(ctx context.Context, id string) (*Tool, error) {
	record, err := repo.client.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, apperr.NotFound("Tool", id)
		}
		return nil, apperr.Upstream(err)
	}

	normalized := normalize(*record)
	return &normalized, nil
}

// Create maps the submission onto store columns and creates one record.
//
// The image column is included only when provided: absent optional fields
// must not reach the store as empty or null cells.
func (repo *AirtableRepository) Create(ctx context.Context, submission Submission) (*Tool, error) {
	fields := map[string]any{
		colName:        submission.Name,
		colURL:         submission.URL,
		colDescription: submission.Description,
		colCategory:    submission.Category,
	}
	if submission.ImageURL != "" {
		fields[colImageURL] = submission.ImageURL
	}

	record, err := repo.client.CreateRecord(ctx, fields)
	if err != nil {
		return nil, apperr.Upstream(err)
	}

	normalized := normalize(*record)
	return &normalized, nil
}

// # Query Translation

// buildFormula converts the query's search and category parameters into the
// store's filter expression. An empty string means no filter (all records
// eligible).
//
// Search matches the lower-cased term as a substring of the name,
// description, and category columns (OR). Category matches ANY of the
// comma-separated terms as a substring of the category column (OR across
// terms). Both clauses combine with AND when present.
func buildFormula(listQuery ListQuery) string {
	var clauses []string

	if listQuery.Search != "" {
		term := escapeFormulaTerm(strings.ToLower(listQuery.Search))
		clauses = append(clauses, fmt.Sprintf(
			"OR(FIND('%s', LOWER({%s})), FIND('%s', LOWER({%s})), FIND('%s', LOWER({%s})))",
			term, colName, term, colDescription, term, colCategory,
		))
	}

	if terms := query.StringSlice(listQuery.Category); len(terms) > 0 {
		matches := make([]string, 0, len(terms))
		for _, categoryTerm := range terms {
			matches = append(matches, fmt.Sprintf(
				"FIND('%s', {%s})", escapeFormulaTerm(categoryTerm), colCategory,
			))
		}
		clause := matches[0]
		if len(matches) > 1 {
			clause = "OR(" + strings.Join(matches, ", ") + ")"
		}
		clauses = append(clauses, clause)
	}

	switch len(clauses) {
	case 0:
		return ""
	case 1:
		return clauses[0]
	default:
		return "AND(" + strings.Join(clauses, ", ") + ")"
	}
}

// buildSort maps the whitelisted sort field onto its store column.
func buildSort(listQuery ListQuery) []airtable.SortField {
	column := colName
	if listQuery.EffectiveSortBy() == SortByRating {
		column = colRating
	}
	return []airtable.SortField{{Field: column, Direction: listQuery.EffectiveSortOrder()}}
}

// escapeFormulaTerm escapes single quotes so user input cannot break out of
// the quoted string inside the filter formula.
func escapeFormulaTerm(term string) string {
	return strings.ReplaceAll(term, "'", `\'`)
}

// # Normalization

// normalize maps the store's untyped field bag onto the canonical [Tool]
// shape. It is total: unknown fields are dropped, missing fields take the
// documented defaults, and a missing rating stays nil rather than zero.
func normalize(record airtable.Record) Tool {
	name := stringField(record.Fields, colName)
	if name == "" {
		name = placeholderName
	}

	return Tool{
		ID:          record.ID,
		Name:        name,
		Description: stringField(record.Fields, colDescription),
		URL:         stringField(record.Fields, colURL),
		Category:    stringField(record.Fields, colCategory),
		Rating:      numberField(record.Fields, colRating),
		ImageURL:    stringField(record.Fields, colImageURL),
		Author:      stringField(record.Fields, colAuthor),
	}
}

// stringField reads a field as a string, tolerating absence and non-string
// values.
func stringField(fields map[string]any, name string) string {
	value, ok := fields[name]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return text
}

// numberField reads a field as a number. JSON decoding yields float64 for
// every numeric cell; anything else (absent, malformed) maps to nil.
func numberField(fields map[string]any, name string) *float64 {
	value, ok := fields[name]
	if !ok {
		return nil
	}
	number, ok := value.(float64)
	if !ok {
		return nil
	}
	return &number
}
