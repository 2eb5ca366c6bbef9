package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

// CreateListingUseCase — конвейер приёма объявления:
// валидация -> загрузка медиа -> геокод -> транзакционная запись.
// Второй результат — нефатальные предупреждения медиа-пайплайна.
type CreateListingUseCase interface {
	Execute(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, []string, error)
}
