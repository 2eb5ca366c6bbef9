package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

// DeleteListingUseCase — удаление объявления.
// Сначала best-effort чистка медиа (фото объявления и комнат), затем одна
// транзакция: leases, applications, rooms, listing, location. Откат
// транзакции медиа не возвращает — эта асимметрия задокументирована.
type DeleteListingUseCase struct {
	storage port.ListingStoragePort
	media   port.MediaStoragePort
	events  port.ListingEventsPort
}

func NewDeleteListingUseCase(
	storage port.ListingStoragePort,
	media port.MediaStoragePort,
	events port.ListingEventsPort,
) *DeleteListingUseCase {
	return &DeleteListingUseCase{
		storage: storage,
		media:   media,
		events:  events,
	}
}

func (uc *DeleteListingUseCase) Execute(ctx context.Context, listingID uuid.UUID, callerManagerID string, isAdmin bool) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"listing_id": listingID.String(),
		"caller":     callerManagerID,
	})

	ucLogger.Info("Use case started", nil)

	listing, rooms, err := uc.storage.GetByID(ctx, listingID)
	if err != nil {
		ucLogger.Error("Failed to load listing for delete", err, nil)
		return err
	}

	// Только владелец или административный override.
	if !isAdmin && listing.ManagerID != callerManagerID {
		ucLogger.Warn("Caller is not the owning manager", port.Fields{
			"owner": listing.ManagerID,
		})
		return domain.ErrNotAuthorized
	}

	// Пре-транзакционная фаза: удаляем медиа. Единичные падения не
	// блокируют удаление объявления.
	mediaURLs := append([]string{}, listing.PhotoURLs...)
	for _, rm := range rooms {
		mediaURLs = append(mediaURLs, rm.PhotoURLs...)
	}
	for _, u := range mediaURLs {
		if err := uc.media.Delete(ctx, u); err != nil {
			ucLogger.Warn("Failed to delete media object, continuing", port.Fields{
				"url": u, "error": err.Error(),
			})
		}
	}

	// Атомарная фаза. При ошибке все четыре удаления откатываются;
	// уже стертое из хранилища медиа не восстанавливается.
	if err := uc.storage.DeleteCascade(ctx, listingID); err != nil {
		ucLogger.Error("Cascade delete failed, rolled back", err, nil)
		return err
	}

	if err := uc.events.ListingDeleted(ctx, listingID, listing.ManagerID); err != nil {
		ucLogger.Error("Failed to publish listing.deleted event", err, nil)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"media_removed": len(mediaURLs),
	})
	return nil
}
