package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/martijn/shopadmin/internal/api/util"
	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/martijn/shopadmin/internal/core/repository"
)

// PageState tracks the list position of one screen. Changing what is
// listed (filters, order or page size) goes back to the first page;
// moving between pages is bounded by the last observed result.
type PageState struct {
	Filter     util.ListFilter `json:"filter"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Observed   bool            `json:"observed"`
}

func NewPageState(defaultPerPage int) *PageState {
	p := &PageState{}
	p.Filter.Normalize(defaultPerPage)
	return p
}

func (p *PageState) reset() {
	p.Filter.Page = 0
}

// SetFilter adds f, replacing any filter on the same field and operator.
func (p *PageState) SetFilter(f util.QueryFilter) {
	filters := p.Filter.Filters[:0:0]
	for _, existing := range p.Filter.Filters {
		if existing.Field == f.Field && existing.Operator == f.Operator {
			continue
		}
		filters = append(filters, existing)
	}
	p.Filter.Filters = append(filters, f)
	p.reset()
}

// RemoveFilter drops every filter on field.
func (p *PageState) RemoveFilter(field string) {
	filters := p.Filter.Filters[:0:0]
	for _, existing := range p.Filter.Filters {
		if existing.Field != field {
			filters = append(filters, existing)
		}
	}
	p.Filter.Filters = filters
	p.reset()
}

// SetFilters replaces all filters.
func (p *PageState) SetFilters(filters []util.QueryFilter) {
	p.Filter.Filters = filters
	p.reset()
}

func (p *PageState) ClearFilters() {
	p.Filter.Filters = nil
	p.reset()
}

func (p *PageState) SetOrder(order []util.OrderClause) {
	p.Filter.Order = order
	p.reset()
}

// SetPerPage changes the page size, clamped to [1, util.MaxPerPage].
func (p *PageState) SetPerPage(perPage int) {
	p.Filter.PerPage = util.ClampPerPage(perPage)
	p.reset()
}

func (p *PageState) lastPage() int {
	if p.TotalPages <= 0 {
		return 0
	}
	return p.TotalPages - 1
}

// Goto moves to page, clamped to the known page range.
func (p *PageState) Goto(page int) {
	if page < 0 {
		page = 0
	}
	if p.Observed && page > p.lastPage() {
		page = p.lastPage()
	}
	p.Filter.Page = page
}

// Next advances one page. It reports false when already on the last page.
func (p *PageState) Next() bool {
	if p.Observed && p.Filter.Page >= p.lastPage() {
		return false
	}
	p.Filter.Page++
	return true
}

// Prev goes back one page. It reports false when already on the first page.
func (p *PageState) Prev() bool {
	if p.Filter.Page <= 0 {
		return false
	}
	p.Filter.Page--
	if p.Observed && p.Filter.Page > p.lastPage() {
		p.Filter.Page = p.lastPage()
	}
	return true
}

// Observe records the totals of a fetched page. When the result set shrank
// below the current position the page is clamped and true is returned, so
// the caller can fetch again.
func (p *PageState) Observe(total, totalPages int) bool {
	p.Total = total
	p.TotalPages = totalPages
	p.Observed = true

	if p.Filter.Page > p.lastPage() {
		p.Filter.Page = p.lastPage()
		return true
	}
	return false
}

// PageStateService persists page states per session and resource.
type PageStateService struct {
	repo           repository.PageStateRepository
	defaultPerPage int
}

func NewPageStateService(repo repository.PageStateRepository, defaultPerPage int) *PageStateService {
	return &PageStateService{repo: repo, defaultPerPage: defaultPerPage}
}

// Load returns the stored state for resource, or a fresh one.
func (s *PageStateService) Load(ctx context.Context, resource string) (*PageState, error) {
	sessionID, ok := shopapi.SessionFrom(ctx)
	if !ok {
		return nil, shopapi.ErrNoSession
	}

	stored, err := s.repo.Find(ctx, sessionID, resource)
	if errors.Is(err, repository.ErrNotFound) {
		return NewPageState(s.defaultPerPage), nil
	}
	if err != nil {
		return nil, err
	}

	state := NewPageState(s.defaultPerPage)
	if err := json.Unmarshal([]byte(stored.State), state); err != nil {
		// unreadable state starts over
		return NewPageState(s.defaultPerPage), nil
	}
	state.Filter.Normalize(s.defaultPerPage)
	return state, nil
}

func (s *PageStateService) Save(ctx context.Context, resource string, state *PageState) error {
	sessionID, ok := shopapi.SessionFrom(ctx)
	if !ok {
		return shopapi.ErrNoSession
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode page state: %w", err)
	}

	return s.repo.Save(ctx, &domain.PageState{
		SessionID: sessionID,
		Resource:  resource,
		State:     string(raw),
		UpdatedAt: time.Now(),
	})
}

// Reset forgets every stored page state of the session.
func (s *PageStateService) Reset(ctx context.Context) error {
	sessionID, ok := shopapi.SessionFrom(ctx)
	if !ok {
		return shopapi.ErrNoSession
	}
	return s.repo.DeleteSession(ctx, sessionID)
}
