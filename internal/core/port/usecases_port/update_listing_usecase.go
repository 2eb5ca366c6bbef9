package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

// UpdateListingUseCase — мутация существующего объявления:
// повторный геокод только при смене адресных полей, замена/дозагрузка медиа.
type UpdateListingUseCase interface {
	Execute(ctx context.Context, listingID uuid.UUID, patch domain.ListingPatch) (*domain.Listing, []string, error)
}
