package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

// GetListingUseCase — одно объявление с локацией и комнатами
// (реальными или одной синтезированной).
type GetListingUseCase interface {
	Execute(ctx context.Context, listingID uuid.UUID) (*domain.ListingDetails, error)
}
