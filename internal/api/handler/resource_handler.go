package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martijn/shopadmin/internal/api/dto"
	"github.com/martijn/shopadmin/internal/api/util"
	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/martijn/shopadmin/internal/core/service"
)

// ResourceHandler serves the CRUD endpoints of one admin resource.
type ResourceHandler[T any] struct {
	service     *service.ResourceService[T]
	queryFields []string
	orderFields []string
}

func NewResourceHandler[T any](svc *service.ResourceService[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		service:     svc,
		queryFields: domain.QueryFields(svc.Name()),
		orderFields: domain.OrderFields(svc.Name()),
	}
}

// Register mounts the resource routes on group.
func (h *ResourceHandler[T]) Register(group *gin.RouterGroup) {
	routes := group.Group("/" + h.service.Name())
	{
		routes.GET("", h.List)
		routes.POST("", h.Create)
		routes.GET("/:id", h.Get)
		routes.PUT("/:id", h.Update)
		routes.DELETE("/:id", h.Delete)
	}
}

// List handles GET /admin/{resource}
func (h *ResourceHandler[T]) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		badRequest(c, "page must be a number")
		return
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(h.service.DefaultPerPage())))
	if err != nil {
		badRequest(c, "per_page must be a number")
		return
	}

	filter, err := util.ParseListFilter(c.Query("query"), c.Query("order"), h.queryFields, h.orderFields)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	filter.Page = page
	filter.PerPage = util.ClampPerPage(perPage)

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	items := result.Items
	if items == nil {
		items = []T{}
	}

	c.JSON(http.StatusOK, dto.ListResponse[T]{
		Items: items,
		Pagination: dto.PaginationInfo{
			Total:      result.Total,
			Page:       result.Page,
			PerPage:    result.PerPage,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /admin/{resource}/:id
func (h *ResourceHandler[T]) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	entity, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

// Create handles POST /admin/{resource}
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &entity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /admin/{resource}/:id
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		badRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &entity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /admin/{resource}/:id
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T]) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, fmt.Sprintf("invalid %s id: %s", h.service.Name(), c.Param("id")))
		return 0, false
	}
	return id, true
}
