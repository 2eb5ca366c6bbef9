package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

// SearchListingsUseCase — поиск по каталогу с произвольной комбинацией фильтров.
type SearchListingsUseCase interface {
	Execute(ctx context.Context, filters domain.SearchFilters) ([]domain.Listing, error)
}
