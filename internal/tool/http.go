package tool

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/toolshelf/toolshelf/internal/platform/request"
	"github.com/toolshelf/toolshelf/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTools)
	router.Post("/submit", handler.submitTool)
	router.Get("/{id}", handler.getTool)
}

func (handler *Handler) listTools(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	listQuery := ListQuery{
		Search:    values.Get("search"),
		Category:  values.Get("category"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}

	tools, err := handler.service.ListTools(request.Context(), listQuery)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tools)
}

func (handler *Handler) getTool(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	found, err := handler.service.GetTool(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) submitTool(writer http.ResponseWriter, request *http.Request) {
	var submission Submission
	if err := requestutil.DecodeJSON(request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.SubmitTool(request.Context(), submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}
