package postgres

import (
	"strings"
	"testing"
	"time"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestApplyFiltersEmpty(t *testing.T) {
	where, args := applyFilters(domain.SearchFilters{})
	if where != "" {
		t.Errorf("empty filters should produce no WHERE clause, got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("empty filters should produce no args, got %v", args)
	}
}

func TestApplyFiltersPriceWindow(t *testing.T) {
	where, args := applyFilters(domain.SearchFilters{
		PriceMin: floatPtr(500),
		PriceMax: floatPtr(1500),
	})

	if !strings.Contains(where, "l.price_per_month >= $1") {
		t.Errorf("missing lower bound: %q", where)
	}
	if !strings.Contains(where, "l.price_per_month <= $2") {
		t.Errorf("missing upper bound: %q", where)
	}
	if len(args) != 2 || args[0] != 500.0 || args[1] != 1500.0 {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestApplyFiltersMinimums(t *testing.T) {
	baths := 1.5
	where, args := applyFilters(domain.SearchFilters{
		BedsMin:  intPtr(2),
		BathsMin: &baths,
	})

	if !strings.Contains(where, "l.beds >= $1") {
		t.Errorf("missing beds minimum: %q", where)
	}
	if !strings.Contains(where, "l.baths >= $2") {
		t.Errorf("missing baths minimum: %q", where)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %v", args)
	}
}

func TestApplyFiltersIDs(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	where, args := applyFilters(domain.SearchFilters{IDs: ids})

	if !strings.Contains(where, "l.id = ANY($1)") {
		t.Errorf("missing id allow-list: %q", where)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %v", args)
	}
}

func TestApplyFiltersAmenities(t *testing.T) {
	where, args := applyFilters(domain.SearchFilters{
		Amenities: []string{"WasherDryer", "Parking"},
	})

	if !strings.Contains(where, "l.amenities @> $1") {
		t.Errorf("missing containment predicate: %q", where)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %v", args)
	}
}

func TestApplyFiltersAvailability(t *testing.T) {
	threshold := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	where, args := applyFilters(domain.SearchFilters{AvailableFrom: &threshold})

	if !strings.Contains(where, "EXISTS (SELECT 1 FROM leases ls WHERE ls.listing_id = l.id AND ls.start_date <= $1)") {
		t.Errorf("missing availability predicate: %q", where)
	}
	if len(args) != 1 || args[0] != threshold {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestApplyFiltersSpatial(t *testing.T) {
	lat, lng := -33.9249, 18.4241
	where, args := applyFilters(domain.SearchFilters{
		CenterLatitude:  &lat,
		CenterLongitude: &lng,
		RadiusKm:        111.0,
	})

	if !strings.Contains(where, "ST_DWithin(loc.coordinates, ST_SetSRID(ST_MakePoint($1, $2), 4326), $3)") {
		t.Errorf("missing spatial predicate: %q", where)
	}
	// Географический порядок: долгота, широта, потом радиус в градусах.
	if len(args) != 3 || args[0] != lng || args[1] != lat || args[2] != 1.0 {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestApplyFiltersSpatialRequiresBothCoordinates(t *testing.T) {
	lat := -33.9249
	where, _ := applyFilters(domain.SearchFilters{
		CenterLatitude: &lat,
		RadiusKm:       50,
	})
	if strings.Contains(where, "ST_DWithin") {
		t.Errorf("spatial predicate should need both coordinates: %q", where)
	}
}

func TestApplyFiltersZeroRadius(t *testing.T) {
	lat, lng := 0.0, 0.0
	where, args := applyFilters(domain.SearchFilters{
		CenterLatitude:  &lat,
		CenterLongitude: &lng,
		RadiusKm:        0,
	})
	// Нулевой радиус легитимен: точное совпадение точки.
	if !strings.Contains(where, "ST_DWithin") {
		t.Errorf("zero radius should still produce spatial predicate: %q", where)
	}
	if args[2] != 0.0 {
		t.Errorf("expected zero degree radius, got %v", args[2])
	}
}

func TestApplyFiltersCombinedNumbering(t *testing.T) {
	lat, lng := 40.7484, -73.9857
	where, args := applyFilters(domain.SearchFilters{
		PriceMax:        floatPtr(2000),
		PropertyType:    "Apartment",
		CenterLatitude:  &lat,
		CenterLongitude: &lng,
		RadiusKm:        55.5,
	})

	if !strings.HasPrefix(where, "WHERE ") {
		t.Fatalf("expected WHERE prefix: %q", where)
	}
	if !strings.Contains(where, "l.price_per_month <= $1") ||
		!strings.Contains(where, "l.property_type = $2") ||
		!strings.Contains(where, "ST_MakePoint($3, $4), 4326), $5") {
		t.Errorf("placeholder numbering broken: %q", where)
	}
	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(args))
	}

	// Ни одно пользовательское значение не попадает в текст запроса.
	if strings.Contains(where, "Apartment") || strings.Contains(where, "2000") {
		t.Errorf("user values leaked into query text: %q", where)
	}
}
