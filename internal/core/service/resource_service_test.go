package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/martijn/shopadmin/internal/api/util"
	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticStore struct{}

func (staticStore) AccessToken(context.Context) (string, error) { return "t", nil }
func (staticStore) RefreshToken(context.Context) (string, error) { return "", nil }
func (staticStore) SaveTokens(context.Context, string, string) error { return nil }
func (staticStore) Clear(context.Context) error { return nil }
func (staticStore) RememberPath(context.Context, string) error { return nil }

func newCouponService(t *testing.T, received *[]map[string]any) *ResourceService[domain.Coupon] {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"content":[],"totalElements":0,"totalPages":0,"number":0,"size":` + r.URL.Query().Get("size") + `}`))
			return
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		*received = append(*received, body)
		body["id"] = 3
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	client, err := shopapi.NewClient(shopapi.Options{BaseURL: srv.URL, Store: staticStore{}})
	require.NoError(t, err)
	return NewResourceService(shopapi.NewResource[domain.Coupon](client, domain.ResourceCoupons), 25, nil)
}

func TestResourceService_ValidatesBeforeSending(t *testing.T) {
	var received []map[string]any
	svc := newCouponService(t, &received)
	ctx := context.Background()

	tests := []struct {
		name    string
		coupon  domain.Coupon
		message string
	}{
		{
			name:    "missing code",
			coupon:  domain.Coupon{DiscountType: domain.DiscountFixed, Value: decimal.NewFromInt(5)},
			message: "code is required",
		},
		{
			name:    "unknown discount type",
			coupon:  domain.Coupon{Code: "X1", DiscountType: "bogo", Value: decimal.NewFromInt(5)},
			message: "discount_type must be one of: percent fixed",
		},
		{
			name:    "percent over 100",
			coupon:  domain.Coupon{Code: "X1", DiscountType: domain.DiscountPercent, Value: decimal.NewFromInt(150)},
			message: "percent discount cannot exceed 100",
		},
		{
			name:    "zero value",
			coupon:  domain.Coupon{Code: "X1", DiscountType: domain.DiscountFixed},
			message: "coupon value must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tt.coupon)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, StatusOf(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
	assert.Empty(t, received)
}

func TestResourceService_NormalizesAndCreates(t *testing.T) {
	var received []map[string]any
	svc := newCouponService(t, &received)

	created, err := svc.Create(context.Background(), &domain.Coupon{
		Code:         " summer10 ",
		DiscountType: domain.DiscountPercent,
		Value:        decimal.NewFromInt(10),
		Active:       true,
	})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "SUMMER10", received[0]["code"])
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "SUMMER10", created.Code)
}

func TestResourceService_ListAppliesDefaultPageSize(t *testing.T) {
	var received []map[string]any
	svc := newCouponService(t, &received)

	page, err := svc.List(context.Background(), util.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 25, page.PerPage)
	assert.Empty(t, page.Items)
}

func TestResourceService_RejectsBadID(t *testing.T) {
	var received []map[string]any
	svc := newCouponService(t, &received)

	_, err := svc.Get(context.Background(), 0)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Equal(t, http.StatusBadRequest, StatusOf(svc.Delete(context.Background(), -1)))
}

func TestResourceService_UpdateBindsPathID(t *testing.T) {
	var paths []string
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		paths = append(paths, r.URL.Path)
		bodies = append(bodies, body)
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	client, err := shopapi.NewClient(shopapi.Options{BaseURL: srv.URL, Store: staticStore{}})
	require.NoError(t, err)
	svc := NewResourceService(shopapi.NewResource[domain.Category](client, domain.ResourceCategories), 25, nil)

	five, two := int64(5), int64(2)
	tests := []struct {
		name     string
		category domain.Category
		message  string
	}{
		{
			name:     "own parent by path id",
			category: domain.Category{Name: "Shoes", ParentID: &five},
			message:  "category cannot be its own parent",
		},
		{
			name:     "body id differs from path",
			category: domain.Category{ID: 9, Name: "Shoes"},
			message:  "body id 9 does not match path id 5",
		},
		{
			name:     "valid without body id",
			category: domain.Category{Name: "Shoes", ParentID: &two},
		},
		{
			name:     "valid with matching body id",
			category: domain.Category{ID: 5, Name: "Shoes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, bodies = nil, nil
			updated, err := svc.Update(context.Background(), 5, &tt.category)
			if tt.message != "" {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, StatusOf(err))
				assert.Contains(t, err.Error(), tt.message)
				assert.Empty(t, paths)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"/categories/5"}, paths)
			assert.Equal(t, float64(5), bodies[0]["id"])
			assert.Equal(t, int64(5), updated.ID)
		})
	}
}
