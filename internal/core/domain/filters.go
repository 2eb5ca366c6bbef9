package domain

import (
	"time"

	"github.com/google/uuid"
)

// SearchFilters — эфемерный разреженный набор критериев поиска.
// nil / пустой срез означает "не фильтровать по этому полю".
// Сентинел "any" обрабатывается на этапе парсинга query-строки:
// сюда он уже не попадает.
type SearchFilters struct {
	IDs []uuid.UUID

	PriceMin *float64
	PriceMax *float64

	BedsMin  *int
	BathsMin *float64

	SquareFeetMin *int
	SquareFeetMax *int

	PropertyType string
	Amenities    []string

	// AvailableFrom — объявление подходит, если существует lease,
	// начинающийся не позже этой даты.
	AvailableFrom *time.Time

	// Центр и радиус поиска. Применяются только вместе.
	CenterLatitude  *float64
	CenterLongitude *float64
	RadiusKm        float64
}
