// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/i18n"
	requestutil "github.com/taibuivan/remark/internal/platform/request"
	"github.com/taibuivan/remark/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer of the comment board.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the comment endpoints.
//
// # Routing Strategy
//
//   - GET  /      list, most recent first
//   - GET  /{id}  single comment
//   - POST /      create from {content}
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listComments)
	router.Get("/{id}", handler.getComment)
	router.Post("/", handler.createComment)

	return router
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	// The segment must be a base-10 integer; anything else fails before the store is reached.
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		message := i18n.PrinterFromContext(request.Context()).Sprintf(i18n.MsgInvalidCommentID)
		respond.Error(writer, request, apperr.InvalidArgument(message))
		return
	}

	found, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}
