package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type fakeSearchUC struct {
	filters domain.SearchFilters
	result  []domain.Listing
	err     error
}

func (f *fakeSearchUC) Execute(ctx context.Context, filters domain.SearchFilters) ([]domain.Listing, error) {
	f.filters = filters
	return f.result, f.err
}

type fakeGetUC struct {
	details *domain.ListingDetails
	err     error
}

func (f *fakeGetUC) Execute(ctx context.Context, listingID uuid.UUID) (*domain.ListingDetails, error) {
	return f.details, f.err
}

type fakeCreateUC struct {
	listing  *domain.Listing
	warnings []string
	err      error
}

func (f *fakeCreateUC) Execute(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, []string, error) {
	return f.listing, f.warnings, f.err
}

type fakeUpdateUC struct {
	listing *domain.Listing
	err     error
}

func (f *fakeUpdateUC) Execute(ctx context.Context, listingID uuid.UUID, patch domain.ListingPatch) (*domain.Listing, []string, error) {
	return f.listing, nil, f.err
}

type fakeDeleteUC struct {
	caller  string
	isAdmin bool
	err     error
}

func (f *fakeDeleteUC) Execute(ctx context.Context, listingID uuid.UUID, callerManagerID string, isAdmin bool) error {
	f.caller = callerManagerID
	f.isAdmin = isAdmin
	return f.err
}

func sampleListing() *domain.Listing {
	return &domain.Listing{
		ID:        uuid.New(),
		Name:      "Flat",
		ManagerID: "mgr-42",
		Location: domain.Location{
			ID:   uuid.New(),
			City: "Cape Town",
			Coordinates: domain.Coordinates{
				Latitude: -33.9249, Longitude: 18.4241,
			},
		},
	}
}

func newTestHandler(search *fakeSearchUC, get *fakeGetUC, create *fakeCreateUC, update *fakeUpdateUC, del *fakeDeleteUC) *ListingsHandler {
	if search == nil {
		search = &fakeSearchUC{}
	}
	if get == nil {
		get = &fakeGetUC{}
	}
	if create == nil {
		create = &fakeCreateUC{}
	}
	if update == nil {
		update = &fakeUpdateUC{}
	}
	if del == nil {
		del = &fakeDeleteUC{}
	}
	return NewListingsHandler(create, search, get, update, del)
}

func TestFindListingsBuildsFilters(t *testing.T) {
	search := &fakeSearchUC{result: []domain.Listing{*sampleListing()}}
	h := newTestHandler(search, nil, nil, nil, nil)

	req := httptest.NewRequest("GET",
		"/api/v1/properties?beds=any&baths=1.5&priceMin=500&propertyType=any&latitude=-33.9&longitude=18.4", nil)
	rec := httptest.NewRecorder()

	h.FindListings(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// "any" эквивалентно отсутствию фильтра.
	if search.filters.BedsMin != nil {
		t.Errorf("beds=any must not constrain: %v", *search.filters.BedsMin)
	}
	if search.filters.PropertyType != "" {
		t.Errorf("propertyType=any must not constrain: %q", search.filters.PropertyType)
	}
	if search.filters.BathsMin == nil || *search.filters.BathsMin != 1.5 {
		t.Errorf("baths filter lost: %v", search.filters.BathsMin)
	}
	if search.filters.CenterLatitude == nil || search.filters.CenterLongitude == nil {
		t.Fatal("spatial center lost")
	}
	if search.filters.RadiusKm != implicitSearchRadiusKm {
		t.Errorf("implicit radius not applied: %v", search.filters.RadiusKm)
	}

	var body ListingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(body.Data) != 1 {
		t.Errorf("expected 1 listing in response, got %d", len(body.Data))
	}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetListingInvalidID(t *testing.T) {
	h := newTestHandler(nil, nil, nil, nil, nil)

	req := withURLParam(httptest.NewRequest("GET", "/api/v1/properties/not-a-uuid", nil), "propertyID", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.GetListing(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetListingNotFound(t *testing.T) {
	get := &fakeGetUC{err: domain.ErrNotFound}
	h := newTestHandler(nil, get, nil, nil, nil)

	id := uuid.NewString()
	req := withURLParam(httptest.NewRequest("GET", "/api/v1/properties/"+id, nil), "propertyID", id)
	rec := httptest.NewRecorder()

	h.GetListing(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetListingSyntheticRoomSerialization(t *testing.T) {
	listing := sampleListing()
	get := &fakeGetUC{details: &domain.ListingDetails{
		Listing: *listing,
		Rooms:   []domain.RoomView{domain.SynthesizeRoomView(*listing)},
	}}
	h := newTestHandler(nil, get, nil, nil, nil)

	id := listing.ID.String()
	req := withURLParam(httptest.NewRequest("GET", "/api/v1/properties/"+id, nil), "propertyID", id)
	rec := httptest.NewRecorder()

	h.GetListing(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body ListingDetailsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(body.Rooms) != 1 || !body.Rooms[0].Synthetic {
		t.Fatalf("synthetic room lost: %+v", body.Rooms)
	}
	// У синтетической комнаты не должно быть персистентного id.
	if body.Rooms[0].ID != "" {
		t.Errorf("synthetic room must have no id: %q", body.Rooms[0].ID)
	}
}

func TestDeleteListingRequiresBearer(t *testing.T) {
	del := &fakeDeleteUC{}
	h := newTestHandler(nil, nil, nil, nil, del)

	id := uuid.NewString()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"well-formed", "Bearer token-123", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withURLParam(httptest.NewRequest("DELETE", "/api/v1/properties/"+id+"?managerId=mgr-42", nil), "propertyID", id)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.DeleteListing(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDeleteListingAdminOverrideHeader(t *testing.T) {
	del := &fakeDeleteUC{}
	h := newTestHandler(nil, nil, nil, nil, del)

	id := uuid.NewString()
	req := withURLParam(httptest.NewRequest("DELETE", "/api/v1/properties/"+id+"?managerId=other", nil), "propertyID", id)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-Admin-Override", "true")
	rec := httptest.NewRecorder()

	h.DeleteListing(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !del.isAdmin || del.caller != "other" {
		t.Errorf("caller identity not forwarded: caller=%q isAdmin=%v", del.caller, del.isAdmin)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{Field: "city", Reason: "is required"}, http.StatusBadRequest},
		{"geocode", &domain.GeocodeFailure{Address: "x", Status: "ZERO_RESULTS"}, http.StatusBadGateway},
		{"storage", &domain.StorageFailure{Op: "upload", Key: "k"}, http.StatusBadGateway},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"not authorized", domain.ErrNotAuthorized, http.StatusForbidden},
		{"transaction", &domain.TransactionFailure{Stage: "delete leases"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapDomainError(tt.err)
			if status != tt.want {
				t.Errorf("status = %d, want %d", status, tt.want)
			}
			if msg == "" {
				t.Error("message must not be empty")
			}
		})
	}
}
