package postgres

import (
	"catalog-service/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

// Точность 7 — ячейка примерно 153x153 метра, хватает для группировки
// объявлений по соседству.
const geohashPrecision = 7

// locationGeohash считает geohash геоточки локации. Пересчитывается при
// каждом повторном геокоде.
func locationGeohash(c domain.Coordinates) string {
	full := geohash.Encode(c.Latitude, c.Longitude)
	if len(full) < geohashPrecision {
		return full
	}
	return full[:geohashPrecision]
}
