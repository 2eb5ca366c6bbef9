package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

// UpdateListingUseCase — мутация существующего объявления.
// Повторный геокод выполняется только если изменился хотя бы один адресный
// компонент (побайтовое сравнение). Нераспарсившиеся поля формы приходят
// сюда nil-указателями и сохраняют прежнее значение — в отличие от
// создания, где fallback захардкожен.
type UpdateListingUseCase struct {
	storage  port.ListingStoragePort
	geocoder port.GeocoderPort
	media    port.MediaStoragePort
	events   port.ListingEventsPort
}

func NewUpdateListingUseCase(
	storage port.ListingStoragePort,
	geocoder port.GeocoderPort,
	media port.MediaStoragePort,
	events port.ListingEventsPort,
) *UpdateListingUseCase {
	return &UpdateListingUseCase{
		storage:  storage,
		geocoder: geocoder,
		media:    media,
		events:   events,
	}
}

func (uc *UpdateListingUseCase) Execute(ctx context.Context, listingID uuid.UUID, patch domain.ListingPatch) (*domain.Listing, []string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateListing",
		"listing_id": listingID.String(),
	})

	ucLogger.Info("Use case started", nil)

	current, _, err := uc.storage.GetByID(ctx, listingID)
	if err != nil {
		ucLogger.Error("Failed to load listing for update", err, nil)
		return nil, nil, err
	}

	// Адрес: геокодим заново только при фактическом изменении компонентов.
	storedAddr := domain.AddressInput{
		Street:     current.Location.Street,
		City:       current.Location.City,
		Region:     current.Location.Region,
		Country:    current.Location.Country,
		PostalCode: current.Location.PostalCode,
	}
	nextAddr, addressChanged := patch.Address.Apply(storedAddr)

	loc := current.Location
	loc.Street = nextAddr.Street
	loc.City = nextAddr.City
	loc.Region = nextAddr.Region
	loc.Country = nextAddr.Country
	loc.PostalCode = nextAddr.PostalCode

	if addressChanged {
		coords, err := uc.geocoder.Geocode(ctx, nextAddr)
		if err != nil {
			ucLogger.Error("Re-geocode failed", err, nil)
			return nil, nil, err
		}
		loc.Coordinates = coords
		ucLogger.Info("Address changed, location re-geocoded", port.Fields{
			"latitude":  coords.Latitude,
			"longitude": coords.Longitude,
		})
	}

	next := applyListingPatch(*current, patch)

	// Медиа: replace — старые удаляются best-effort и заменяются,
	// иначе новые добавляются в конец.
	var warnings []string
	if len(patch.Photos) > 0 || patch.ReplacePhotos {
		newURLs, uploadWarnings, err := uc.uploadPhotos(ctx, patch.Photos, current.ManagerID)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, uploadWarnings...)

		if patch.ReplacePhotos {
			for _, oldURL := range current.PhotoURLs {
				if err := uc.media.Delete(ctx, oldURL); err != nil {
					// Падение удаления логируется и глотается — замену фото
					// оно не блокирует.
					ucLogger.Warn("Failed to delete replaced photo", port.Fields{
						"url": oldURL, "error": err.Error(),
					})
				}
			}
			next.PhotoURLs = newURLs
		} else {
			next.PhotoURLs = append(append([]string{}, current.PhotoURLs...), newURLs...)
		}
	}

	updated, err := uc.storage.UpdateWithLocation(ctx, loc, next)
	if err != nil {
		ucLogger.Error("Persist failed", err, nil)
		return nil, warnings, fmt.Errorf("update listing: persist failed: %w", err)
	}

	if err := uc.events.ListingUpdated(ctx, updated.ID, updated.ManagerID); err != nil {
		ucLogger.Error("Failed to publish listing.updated event", err, nil)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"re_geocoded": addressChanged})
	return updated, warnings, nil
}

func (uc *UpdateListingUseCase) uploadPhotos(ctx context.Context, photos []domain.MediaFile, namespace string) ([]string, []string, error) {
	if len(photos) == 0 {
		return nil, nil, nil
	}
	results, err := uc.media.UploadMany(ctx, photos, namespace)
	if err != nil {
		return nil, nil, fmt.Errorf("update listing: media upload failed: %w", err)
	}
	urls := make([]string, 0, len(results))
	var warnings []string
	for _, r := range results {
		urls = append(urls, r.URL)
		warnings = append(warnings, r.Warnings...)
	}
	return urls, warnings, nil
}

// applyListingPatch накладывает ненулевые поля патча поверх сохраненной
// записи. nil — оставить как есть.
func applyListingPatch(current domain.Listing, p domain.ListingPatch) domain.Listing {
	next := current
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.PricePerMonth != nil {
		next.PricePerMonth = *p.PricePerMonth
	}
	if p.SecurityDeposit != nil {
		next.SecurityDeposit = *p.SecurityDeposit
	}
	if p.ApplicationFee != nil {
		next.ApplicationFee = *p.ApplicationFee
	}
	if p.Beds != nil {
		next.Beds = *p.Beds
	}
	if p.Baths != nil {
		next.Baths = *p.Baths
	}
	if p.SquareFeet != nil {
		next.SquareFeet = *p.SquareFeet
	}
	if p.PropertyType != nil {
		next.PropertyType = *p.PropertyType
	}
	if p.IsPetsAllowed != nil {
		next.IsPetsAllowed = *p.IsPetsAllowed
	}
	if p.IsParkingIncluded != nil {
		next.IsParkingIncluded = *p.IsParkingIncluded
	}
	if p.Amenities != nil {
		next.Amenities = *p.Amenities
	}
	if p.Highlights != nil {
		next.Highlights = *p.Highlights
	}
	return next
}
