package shopapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/martijn/shopadmin/internal/api/util"
	"github.com/martijn/shopadmin/internal/core/domain"
)

// pageEnvelope is the paginated list shape returned by the shop API.
type pageEnvelope[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
	Size          int `json:"size"`
}

// Resource is typed CRUD access to one shop API collection.
type Resource[T any] struct {
	client *Client
	name   string
}

func NewResource[T any](client *Client, name string) *Resource[T] {
	return &Resource[T]{client: client, name: name}
}

func (r *Resource[T]) Name() string {
	return r.name
}

// List fetches one page of the collection.
func (r *Resource[T]) List(ctx context.Context, filter util.ListFilter) (*domain.Page[T], error) {
	var env pageEnvelope[T]
	if err := r.client.Do(withResource(ctx, r.name), http.MethodGet, r.name, EncodeListFilter(filter), nil, &env); err != nil {
		return nil, err
	}

	items := env.Content
	if items == nil {
		items = []T{}
	}
	return &domain.Page[T]{
		Items:      items,
		Total:      env.TotalElements,
		TotalPages: env.TotalPages,
		Page:       env.Number,
		PerPage:    env.Size,
	}, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.client.Do(withResource(ctx, r.name), http.MethodGet, idPath(r.name, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Create(ctx context.Context, entity *T) (*T, error) {
	var out T
	if err := r.client.Do(withResource(ctx, r.name), http.MethodPost, r.name, nil, entity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id int64, entity *T) (*T, error) {
	var out T
	if err := r.client.Do(withResource(ctx, r.name), http.MethodPut, idPath(r.name, id), nil, entity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.Do(withResource(ctx, r.name), http.MethodDelete, idPath(r.name, id), nil, nil, nil)
}

// EncodeListFilter renders a page request as shop API query parameters:
// page, size, one sort=field,dir per clause, field=value for equality and
// field.op=value for every other operator.
func EncodeListFilter(filter util.ListFilter) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(filter.Page))
	if filter.PerPage > 0 {
		q.Set("size", strconv.Itoa(filter.PerPage))
	}

	for _, o := range filter.Order {
		q.Add("sort", o.Field+","+string(o.Direction))
	}

	for _, f := range filter.Filters {
		switch f.Operator {
		case util.OpEq:
			q.Add(f.Field, f.Value)
		case util.OpIsNull, util.OpIsNotNull:
			q.Add(f.Field+"."+string(f.Operator), "true")
		case util.OpIn, util.OpNin:
			q.Add(f.Field+"."+string(f.Operator), strings.Join(f.Values, ","))
		default:
			q.Add(f.Field+"."+string(f.Operator), f.Value)
		}
	}

	return q
}
