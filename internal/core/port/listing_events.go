package port

import (
	"context"

	"github.com/google/uuid"
)

// ListingEventsPort — публикация событий жизненного цикла объявления.
// Ошибка публикации логируется вызывающей стороной и не фатальна для запроса.
type ListingEventsPort interface {
	ListingCreated(ctx context.Context, listingID uuid.UUID, managerID string) error
	ListingUpdated(ctx context.Context, listingID uuid.UUID, managerID string) error
	ListingDeleted(ctx context.Context, listingID uuid.UUID, managerID string) error
}
