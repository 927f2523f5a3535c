package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/martijn/shopadmin/internal/api/util"
	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/martijn/shopadmin/internal/logger"
)

// ResourceService is the CRUD workflow for one admin screen. Entities are
// validated before they reach the wire.
type ResourceService[T any] struct {
	resource       *shopapi.Resource[T]
	validate       *validator.Validate
	defaultPerPage int
	log            *logger.Logger
}

func NewResourceService[T any](resource *shopapi.Resource[T], defaultPerPage int, log *logger.Logger) *ResourceService[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &ResourceService[T]{
		resource:       resource,
		validate:       newValidator(),
		defaultPerPage: defaultPerPage,
		log:            log.WithFields("resource", resource.Name()),
	}
}

func (s *ResourceService[T]) Name() string {
	return s.resource.Name()
}

func (s *ResourceService[T]) DefaultPerPage() int {
	return s.defaultPerPage
}

func (s *ResourceService[T]) List(ctx context.Context, filter util.ListFilter) (*domain.Page[T], error) {
	filter.Normalize(s.defaultPerPage)

	page, err := s.resource.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.Name(), err)
	}
	return page, nil
}

func (s *ResourceService[T]) Get(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, badRequest("id must be positive")
	}
	entity, err := s.resource.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", s.Name(), id, err)
	}
	return entity, nil
}

func (s *ResourceService[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := validateEntity(s.validate, entity); err != nil {
		return nil, err
	}

	created, err := s.resource.Create(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.Name(), err)
	}
	s.log.Info("created")
	return created, nil
}

func (s *ResourceService[T]) Update(ctx context.Context, id int64, entity *T) (*T, error) {
	if id <= 0 {
		return nil, badRequest("id must be positive")
	}
	if e, ok := any(entity).(domain.Identified); ok {
		if bodyID := e.EntityID(); bodyID != 0 && bodyID != id {
			return nil, badRequest(fmt.Sprintf("body id %d does not match path id %d", bodyID, id))
		}
		e.SetEntityID(id)
	}
	if err := validateEntity(s.validate, entity); err != nil {
		return nil, err
	}

	updated, err := s.resource.Update(ctx, id, entity)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %d: %w", s.Name(), id, err)
	}
	s.log.Info("updated", "id", id)
	return updated, nil
}

func (s *ResourceService[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return badRequest("id must be positive")
	}
	if err := s.resource.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", s.Name(), id, err)
	}
	s.log.Info("deleted", "id", id)
	return nil
}
