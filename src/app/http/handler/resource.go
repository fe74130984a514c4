package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"resourcehub/src/app/http/response"
	"resourcehub/src/app/middleware"
	"resourcehub/src/core/dto"
	"resourcehub/src/core/usecase"
)

// ResourcePath is the route prefix of the resource collection.
const ResourcePath = "/resource"

// ResourceHandler binds the resource routes to the ResourceService.
type ResourceHandler struct {
	resourceService *usecase.ResourceService
}

func NewResourceHandler(resourceService *usecase.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// Register mounts the resource routes on r.
func (h *ResourceHandler) Register(r gin.IRouter) {
	g := r.Group(ResourcePath)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Replace)
	g.PATCH("/:id", h.Patch)
	g.DELETE("/:id", h.Delete)
}

// Create handles POST /resource.
func (h *ResourceHandler) Create(c *gin.Context) {
	var req dto.CreateDTO
	if !bindBody(c, &req) {
		return
	}

	created, err := h.resourceService.Create(c.Request.Context(), req)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, fmt.Sprintf("%s/%d", ResourcePath, created.ID), created)
}

// List handles GET /resource?page=&pageSize=.
// Missing or malformed numbers fall back to the service defaults.
func (h *ResourceHandler) List(c *gin.Context) {
	page := queryInt(c, "page")
	pageSize := queryInt(c, "pageSize")

	res, err := h.resourceService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.List(c, response.Paginated{
		Data:       res.Items,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	})
}

// Get handles GET /resource/:id.
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	res, err := h.resourceService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, res)
}

// Replace handles PUT /resource/:id.
func (h *ResourceHandler) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateDTO
	if !bindBody(c, &req) {
		return
	}

	if err := h.resourceService.UpdateFull(c.Request.Context(), id, req); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

// Patch handles PATCH /resource/:id.
func (h *ResourceHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PatchDTO
	if !bindBody(c, &req) {
		return
	}

	if err := h.resourceService.UpdatePartial(c.Request.Context(), id, req); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

// Delete handles DELETE /resource/:id.
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.resourceService.Delete(c.Request.Context(), id); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid resource id", middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// bindBody decodes the JSON body into dst. Type mismatches are reported as
// validation errors on the offending field; anything else is a bad request.
func bindBody(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	requestID := middleware.GetRequestID(c)
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		response.ValidationError(c, typeErr.Field, "must be "+expectedKind(typeErr.Type), requestID)
	case errors.Is(err, io.EOF):
		response.BadRequest(c, "request body is required", requestID)
	default:
		response.BadRequest(c, "invalid payload", requestID)
	}
	return false
}

func expectedKind(t reflect.Type) string {
	switch {
	case t == reflect.TypeFor[decimal.Decimal]():
		return "a decimal number"
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Uint64:
		return "an integer"
	case t.Kind() == reflect.String:
		return "a string"
	default:
		return "a " + t.String()
	}
}
