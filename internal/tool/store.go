package tool

import "context"

// Repository is the read/write surface of the listing store.
//
// Implementations own query translation: they turn a [ListQuery] into
// whatever filter/sort mechanism the backing store understands and return
// records already normalized into the canonical [Tool] shape.
type Repository interface {
	// List returns every record matching the query, fully paginated.
	List(ctx context.Context, query ListQuery) ([]Tool, error)

	// GetByID returns a single record. Unknown ids yield a not-found error
	// carrying the id, distinct from generic store failure.
	GetByID(ctx context.Context, id string) (*Tool, error)

	// Create persists exactly one record from the submission and returns it
	// normalized through the same projection as the read path.
	Create(ctx context.Context, submission Submission) (*Tool, error)
}
