package tool

import (
	"context"
	"log/slog"

	"github.com/toolshelf/toolshelf/internal/platform/validate"
)

// Field names used in validation error details. They match the submission's
// JSON keys so clients can map details straight onto form fields.
const (
	fieldName        = "Tool Name"
	fieldURL         = "URL"
	fieldDescription = "Description"
	fieldCategory    = "Category"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListTools returns all records matching the query.
func (service *Service) ListTools(ctx context.Context, listQuery ListQuery) ([]Tool, error) {
	return service.repo.List(ctx, listQuery)
}

// GetTool returns a single record by its store-assigned id.
func (service *Service) GetTool(ctx context.Context, id string) (*Tool, error) {
	return service.repo.GetByID(ctx, id)
}

// SubmitTool validates the submission and creates one record.
//
// Validation accumulates every violation before failing, and no store call
// is made when any field is invalid.
func (service *Service) SubmitTool(ctx context.Context, submission Submission) (*Tool, error) {
	v := &validate.Validator{}
	err := v.
		Required(fieldName, submission.Name).
		URL(fieldURL, submission.URL).
		Required(fieldDescription, submission.Description).
		Required(fieldCategory, submission.Category).
		Err()
	if err != nil {
		return nil, err
	}

	created, err := service.repo.Create(ctx, submission)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "tool_submitted",
		slog.String("id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}
