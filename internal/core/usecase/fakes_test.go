package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

// Ручные фейки портов: фиксируют вызовы и отдают заранее заданные ответы.

type fakeStorage struct {
	listing *domain.Listing
	rooms   []domain.Room

	getErr     error
	createErr  error
	updateErr  error
	findErr    error
	cascadeErr error

	createCalls  int
	updateCalls  int
	cascadeCalls int
	findFilters  *domain.SearchFilters

	lastLocation domain.Location
	lastListing  domain.Listing
	findResult   []domain.Listing
}

func (f *fakeStorage) CreateWithLocation(ctx context.Context, loc domain.Location, l domain.Listing) (*domain.Listing, error) {
	f.createCalls++
	f.lastLocation = loc
	f.lastListing = l
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := l
	created.Location = loc
	return &created, nil
}

func (f *fakeStorage) UpdateWithLocation(ctx context.Context, loc domain.Location, l domain.Listing) (*domain.Listing, error) {
	f.updateCalls++
	f.lastLocation = loc
	f.lastListing = l
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	updated := l
	updated.Location = loc
	return &updated, nil
}

func (f *fakeStorage) FindWithFilters(ctx context.Context, filters domain.SearchFilters) ([]domain.Listing, error) {
	f.findFilters = &filters
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findResult, nil
}

func (f *fakeStorage) GetByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, []domain.Room, error) {
	if f.getErr != nil {
		return nil, nil, f.getErr
	}
	cp := *f.listing
	return &cp, f.rooms, nil
}

func (f *fakeStorage) DeleteCascade(ctx context.Context, listingID uuid.UUID) error {
	f.cascadeCalls++
	return f.cascadeErr
}

type fakeGeocoder struct {
	coords domain.Coordinates
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, addr domain.AddressInput) (domain.Coordinates, error) {
	f.calls++
	if f.err != nil {
		return domain.Coordinates{}, f.err
	}
	return f.coords, nil
}

type fakeMedia struct {
	uploadErr error
	deleteErr error
	warnings  []string

	uploaded []string
	deleted  []string
}

func (f *fakeMedia) Upload(ctx context.Context, file domain.MediaFile, namespace string) (port.UploadResult, error) {
	if f.uploadErr != nil {
		return port.UploadResult{}, f.uploadErr
	}
	url := fmt.Sprintf("https://media.test/%s/%s", namespace, file.Name)
	f.uploaded = append(f.uploaded, url)
	return port.UploadResult{URL: url, Warnings: f.warnings}, nil
}

func (f *fakeMedia) UploadMany(ctx context.Context, files []domain.MediaFile, namespace string) ([]port.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	results := make([]port.UploadResult, 0, len(files))
	for _, file := range files {
		r, err := f.Upload(ctx, file, namespace)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (f *fakeMedia) Delete(ctx context.Context, url string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, url)
	return nil
}

type fakeEvents struct {
	created []uuid.UUID
	updated []uuid.UUID
	deleted []uuid.UUID
	err     error
}

func (f *fakeEvents) ListingCreated(ctx context.Context, listingID uuid.UUID, managerID string) error {
	f.created = append(f.created, listingID)
	return f.err
}

func (f *fakeEvents) ListingUpdated(ctx context.Context, listingID uuid.UUID, managerID string) error {
	f.updated = append(f.updated, listingID)
	return f.err
}

func (f *fakeEvents) ListingDeleted(ctx context.Context, listingID uuid.UUID, managerID string) error {
	f.deleted = append(f.deleted, listingID)
	return f.err
}

func validDraft() domain.ListingDraft {
	return domain.ListingDraft{
		Name:        "Sea Point Flat",
		Description: "Ocean view",
		Address: domain.AddressInput{
			Street:  "12 Beach Rd",
			City:    "Cape Town",
			Country: "South Africa",
		},
		PricePerMonth: 1200,
		Beds:          2,
		Baths:         1,
		PropertyType:  "Apartment",
		Amenities:     []string{"WasherDryer"},
		Highlights:    []string{},
		ManagerID:     "mgr-42",
	}
}

func storedListing() *domain.Listing {
	return &domain.Listing{
		ID:            uuid.New(),
		Name:          "Stored Flat",
		PricePerMonth: 1500,
		Beds:          3,
		Baths:         2,
		PropertyType:  "House",
		PhotoURLs:     []string{"https://media.test/mgr-42/old.jpg"},
		ManagerID:     "mgr-42",
		Location: domain.Location{
			ID:      uuid.New(),
			Street:  "1 Old St",
			City:    "Austin",
			Country: "USA",
			Coordinates: domain.Coordinates{
				Latitude:  30.2672,
				Longitude: -97.7431,
			},
		},
	}
}
