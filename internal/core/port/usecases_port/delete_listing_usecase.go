package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

// DeleteListingUseCase — удаление объявления: best-effort чистка медиа,
// затем атомарное удаление leases, applications, listing, location.
type DeleteListingUseCase interface {
	Execute(ctx context.Context, listingID uuid.UUID, callerManagerID string, isAdmin bool) error
}
