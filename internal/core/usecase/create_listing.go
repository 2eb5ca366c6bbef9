package usecase

import (
	"context"
	"fmt"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

// CreateListingUseCase — конвейер приёма объявления.
// Линейная машина состояний: валидация -> загрузка медиа -> геокод ->
// транзакционная запись Location+Listing. Реляционные записи откладываются
// до последнего шага и коммитятся атомарно, поэтому осиротевшие Location
// невозможны. Медиа, загруженное до упавшего геокода/записи, остается в
// хранилище — автоматической компенсации нет, URL-ы попадают в лог для
// ручной сверки.
type CreateListingUseCase struct {
	storage  port.ListingStoragePort
	geocoder port.GeocoderPort
	media    port.MediaStoragePort
	events   port.ListingEventsPort
}

// NewCreateListingUseCase создает новый экземпляр use case.
func NewCreateListingUseCase(
	storage port.ListingStoragePort,
	geocoder port.GeocoderPort,
	media port.MediaStoragePort,
	events port.ListingEventsPort,
) *CreateListingUseCase {
	return &CreateListingUseCase{
		storage:  storage,
		geocoder: geocoder,
		media:    media,
		events:   events,
	}
}

func validateDraft(d domain.ListingDraft) error {
	switch {
	case d.Address.Street == "":
		return &domain.ValidationError{Field: "street", Reason: "is required"}
	case d.Address.City == "":
		return &domain.ValidationError{Field: "city", Reason: "is required"}
	case d.Address.Country == "":
		return &domain.ValidationError{Field: "country", Reason: "is required"}
	case d.ManagerID == "":
		return &domain.ValidationError{Field: "managerId", Reason: "is required"}
	}
	return nil
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, []string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "CreateListing",
		"manager_id": draft.ManagerID,
		"city":       draft.Address.City,
	})

	ucLogger.Info("Use case started", nil)

	// Шаг 1: валидация. Ничего не записано, побочных эффектов не было.
	if err := validateDraft(draft); err != nil {
		ucLogger.Warn("Draft validation failed", port.Fields{"error": err.Error()})
		return nil, nil, err
	}

	// Шаг 2: загрузка медиа. Падение терминально — в базе еще пусто,
	// откатывать нечего.
	var photoURLs []string
	var warnings []string
	if len(draft.Photos) > 0 {
		results, err := uc.media.UploadMany(ctx, draft.Photos, draft.ManagerID)
		if err != nil {
			ucLogger.Error("Media upload failed", err, nil)
			return nil, nil, fmt.Errorf("create listing: media upload failed: %w", err)
		}
		for _, r := range results {
			photoURLs = append(photoURLs, r.URL)
			warnings = append(warnings, r.Warnings...)
		}
	}

	// Шаг 3: геокод. Падение терминально; уже загруженное медиа остается
	// осиротевшим — пишем URL-ы в лог, чтобы оператор мог прибраться.
	coords, err := uc.geocoder.Geocode(ctx, draft.Address)
	if err != nil {
		ucLogger.Error("Geocode failed, uploaded media left orphaned", err, port.Fields{
			"orphaned_media": photoURLs,
		})
		return nil, warnings, err
	}

	// Шаги 4-5: Location и Listing в одной транзакции.
	loc := domain.Location{
		ID:          uuid.New(),
		Street:      draft.Address.Street,
		City:        draft.Address.City,
		Region:      draft.Address.Region,
		Country:     draft.Address.Country,
		PostalCode:  draft.Address.PostalCode,
		Coordinates: coords,
	}
	listing := domain.Listing{
		ID:                uuid.New(),
		Name:              draft.Name,
		Description:       draft.Description,
		PricePerMonth:     draft.PricePerMonth,
		SecurityDeposit:   draft.SecurityDeposit,
		ApplicationFee:    draft.ApplicationFee,
		Beds:              draft.Beds,
		Baths:             draft.Baths,
		SquareFeet:        draft.SquareFeet,
		PropertyType:      draft.PropertyType,
		IsPetsAllowed:     draft.IsPetsAllowed,
		IsParkingIncluded: draft.IsParkingIncluded,
		Amenities:         draft.Amenities,
		Highlights:        draft.Highlights,
		PhotoURLs:         photoURLs,
		ManagerID:         draft.ManagerID,
		PostedDate:        time.Now().UTC(),
	}

	created, err := uc.storage.CreateWithLocation(ctx, loc, listing)
	if err != nil {
		ucLogger.Error("Persist failed, uploaded media left orphaned", err, port.Fields{
			"orphaned_media": photoURLs,
		})
		return nil, warnings, fmt.Errorf("create listing: persist failed: %w", err)
	}

	// Событие — не фатально для запроса.
	if err := uc.events.ListingCreated(ctx, created.ID, created.ManagerID); err != nil {
		ucLogger.Error("Failed to publish listing.created event", err, nil)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"listing_id": created.ID.String(),
		"latitude":   created.Location.Coordinates.Latitude,
		"longitude":  created.Location.Coordinates.Longitude,
	})
	return created, warnings, nil
}
