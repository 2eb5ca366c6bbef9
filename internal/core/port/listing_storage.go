package port

import (
	"context"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

// ListingStoragePort — контракт реляционного+пространственного хранилища каталога.
type ListingStoragePort interface {
	// CreateWithLocation пишет Location и ссылающийся на него Listing
	// в одной транзакции и возвращает собранную запись с координатами.
	CreateWithLocation(ctx context.Context, loc domain.Location, l domain.Listing) (*domain.Listing, error)

	// UpdateWithLocation обновляет обе записи в одной транзакции.
	UpdateWithLocation(ctx context.Context, loc domain.Location, l domain.Listing) (*domain.Listing, error)

	// FindWithFilters выполняет один joined-запрос listings x locations
	// с собранными предикатами.
	FindWithFilters(ctx context.Context, filters domain.SearchFilters) ([]domain.Listing, error)

	// GetByID возвращает объявление с локацией и сохраненными комнатами.
	// Возвращает domain.ErrNotFound, если объявления нет.
	GetByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, []domain.Room, error)

	// DeleteCascade атомарно удаляет leases, applications, listing и location.
	// При любой ошибке внутри транзакции не удаляется ничего.
	DeleteCascade(ctx context.Context, listingID uuid.UUID) error
}
