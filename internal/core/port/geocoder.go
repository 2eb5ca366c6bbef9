package port

import (
	"context"

	"catalog-service/internal/core/domain"
)

// GeocoderPort — контракт внешнего геокодера.
// Одна попытка на вызов; ретраи, если они нужны, — дело оркестратора.
// Неуспех — *domain.GeocodeFailure, координаты никогда не выдумываются.
type GeocoderPort interface {
	Geocode(ctx context.Context, addr domain.AddressInput) (domain.Coordinates, error)
}
