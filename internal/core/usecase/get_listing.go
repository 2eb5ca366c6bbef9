package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

// GetListingUseCase — одно объявление с локацией и комнатами.
// Контракт "у объявления всегда есть комнаты": если в базе ни одной,
// синтезируется ровно одна транзиентная комната из полей самого объявления,
// помеченная Synthetic=true. В хранилище она не пишется никогда.
type GetListingUseCase struct {
	storage port.ListingStoragePort
}

func NewGetListingUseCase(storage port.ListingStoragePort) *GetListingUseCase {
	return &GetListingUseCase{storage: storage}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, listingID uuid.UUID) (*domain.ListingDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListing",
		"listing_id": listingID.String(),
	})

	listing, rooms, err := uc.storage.GetByID(ctx, listingID)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	details := &domain.ListingDetails{Listing: *listing}
	if len(rooms) == 0 {
		details.Rooms = []domain.RoomView{domain.SynthesizeRoomView(*listing)}
	} else {
		details.Rooms = make([]domain.RoomView, len(rooms))
		for i, rm := range rooms {
			details.Rooms[i] = domain.RoomView{Room: rm}
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"rooms":     len(details.Rooms),
		"synthetic": len(rooms) == 0,
	})
	return details, nil
}
