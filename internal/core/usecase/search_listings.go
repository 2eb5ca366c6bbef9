package usecase

import (
	"context"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

// SearchListingsUseCase — поиск по каталогу. Композиция предикатов и
// декодирование геометрии живут в хранилище, здесь только оркестрация и лог.
type SearchListingsUseCase struct {
	storage port.ListingStoragePort
}

func NewSearchListingsUseCase(storage port.ListingStoragePort) *SearchListingsUseCase {
	return &SearchListingsUseCase{storage: storage}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, filters domain.SearchFilters) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
	})

	ucLogger.Info("Use case started", nil)

	listings, err := uc.storage.FindWithFilters(ctx, filters)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found": len(listings),
	})
	return listings, nil
}
