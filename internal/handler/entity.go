package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/deppfellow/flatchores/internal/errs"
	"github.com/deppfellow/flatchores/internal/lib/job"
	"github.com/deppfellow/flatchores/internal/model"
	"github.com/deppfellow/flatchores/internal/server"
	"github.com/deppfellow/flatchores/internal/service"
	"github.com/deppfellow/flatchores/internal/validation"

	"github.com/labstack/echo/v4"
)

// EntityHandler serves the CRUD endpoints of one record type under
// /api/{route}.
type EntityHandler[T model.Entity[T]] struct {
	Handler
	service *service.EntityService[T]
	route   string
}

func NewEntityHandler[T model.Entity[T]](s *server.Server, svc *service.EntityService[T], route string) *EntityHandler[T] {
	return &EntityHandler[T]{
		Handler: NewHandler(s),
		service: svc,
		route:   route,
	}
}

// Route is the path segment after /api, e.g. "type-of-chores".
func (h *EntityHandler[T]) Route() string {
	return h.route
}

// entityRequest decodes the JSON body into a record. The body is required:
// echo skips decoding an empty body, and a null body carries no record.
type entityRequest[T model.Entity[T]] struct {
	entity  T
	present bool
}

func newEntityRequest[T model.Entity[T]]() *entityRequest[T] {
	return &entityRequest[T]{}
}

func (r *entityRequest[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, &r.entity); err != nil {
		return err
	}
	r.present = true
	return nil
}

func (r *entityRequest[T]) Validate() error {
	if !r.present {
		return validation.CustomValidationErrors{{Field: "body", Message: "is required"}}
	}
	return r.entity.Validate()
}

type idRequest struct {
	ID int64 `param:"id"`
}

func newIDRequest() *idRequest {
	return &idRequest{}
}

func (r *idRequest) Validate() error {
	return nil
}

type listRequest struct{}

func newListRequest() *listRequest {
	return &listRequest{}
}

func (r *listRequest) Validate() error {
	return nil
}

// Create answers 201 with a Location header. A body carrying an id is
// rejected with the idexists error key.
func (h *EntityHandler[T]) Create(c echo.Context, req *entityRequest[T]) (Response, error) {
	name := h.service.Name()

	if req.entity.Identity().IsSet() {
		setFailureAlert(c, name, errs.CodeIDExists)
		return Response{}, errs.NewIDExistsError(name)
	}

	saved, err := h.service.Create(c.Request().Context(), req.entity)
	if err != nil {
		return Response{}, err
	}

	id := saved.Identity().String()
	c.Response().Header().Set(echo.HeaderLocation, "/api/"+h.route+"/"+id)
	setAlert(c, name, job.ActionCreated, id)

	return Response{Status: http.StatusCreated, Body: saved}, nil
}

// Update saves the record in place. Without an id it creates instead.
func (h *EntityHandler[T]) Update(c echo.Context, req *entityRequest[T]) (Response, error) {
	if !req.entity.Identity().IsSet() {
		return h.Create(c, req)
	}

	saved, err := h.service.Update(c.Request().Context(), req.entity)
	if err != nil {
		return Response{}, err
	}

	setAlert(c, h.service.Name(), job.ActionUpdated, saved.Identity().String())

	return Response{Status: http.StatusOK, Body: saved}, nil
}

func (h *EntityHandler[T]) List(c echo.Context, _ *listRequest) ([]T, error) {
	return h.service.List(c.Request().Context())
}

// Get answers 404 with an empty body when the record does not exist.
func (h *EntityHandler[T]) Get(c echo.Context, req *idRequest) (Response, error) {
	entity, found, err := h.service.Get(c.Request().Context(), req.ID)
	if err != nil {
		return Response{}, err
	}
	if !found {
		return Response{Status: http.StatusNotFound}, nil
	}

	return Response{Status: http.StatusOK, Body: entity}, nil
}

// Delete succeeds whether or not the record existed.
func (h *EntityHandler[T]) Delete(c echo.Context, req *idRequest) error {
	if err := h.service.Delete(c.Request().Context(), req.ID); err != nil {
		return err
	}

	setAlert(c, h.service.Name(), job.ActionDeleted, strconv.FormatInt(req.ID, 10))
	return nil
}

// Register mounts the endpoints on g, which is already scoped to /api/{route}.
func (h *EntityHandler[T]) Register(g *echo.Group) {
	g.POST("", Handle(h.Handler, h.Create, http.StatusCreated, newEntityRequest[T]))
	g.PUT("", Handle(h.Handler, h.Update, http.StatusOK, newEntityRequest[T]))
	g.GET("", Handle(h.Handler, h.List, http.StatusOK, newListRequest))
	g.GET("/:id", Handle(h.Handler, h.Get, http.StatusOK, newIDRequest))
	g.DELETE("/:id", HandleNoContent(h.Handler, h.Delete, http.StatusOK, newIDRequest))
}
