package rest

import (
	"net/url"
	"testing"
	"time"
)

func TestParseStringSentinel(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"absent key", "", ""},
		{"any lowercase", "propertyType=any", ""},
		{"any mixed case", "propertyType=ANY", ""},
		{"real value", "propertyType=Apartment", "Apartment"},
		{"padded value", "propertyType=%20Villa%20", "Villa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			if got := parseString(q, "propertyType"); got != tt.want {
				t.Errorf("parseString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFloatPtr(t *testing.T) {
	q, _ := url.ParseQuery("priceMin=750.5&priceMax=any&baths=oops")

	if got := parseFloatPtr(q, "priceMin"); got == nil || *got != 750.5 {
		t.Errorf("priceMin parse failed: %v", got)
	}
	if got := parseFloatPtr(q, "priceMax"); got != nil {
		t.Errorf("sentinel should yield nil, got %v", *got)
	}
	if got := parseFloatPtr(q, "baths"); got != nil {
		t.Errorf("unparseable should yield nil, got %v", *got)
	}
	if got := parseFloatPtr(q, "missing"); got != nil {
		t.Errorf("absent key should yield nil, got %v", *got)
	}
}

func TestParseIntPtr(t *testing.T) {
	q, _ := url.ParseQuery("beds=3&bad=3.5")

	if got := parseIntPtr(q, "beds"); got == nil || *got != 3 {
		t.Errorf("beds parse failed: %v", got)
	}
	if got := parseIntPtr(q, "bad"); got != nil {
		t.Errorf("non-integer should yield nil, got %v", *got)
	}
}

func TestParseStringSlice(t *testing.T) {
	q, _ := url.ParseQuery("amenities=WasherDryer,%20Parking,,Pool&empty=&sentinel=any")

	got := parseStringSlice(q, "amenities")
	want := []string{"WasherDryer", "Parking", "Pool"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: got %q, want %q", i, got[i], want[i])
		}
	}

	if got := parseStringSlice(q, "empty"); got != nil {
		t.Errorf("empty value should yield nil, got %v", got)
	}
	if got := parseStringSlice(q, "sentinel"); got != nil {
		t.Errorf("sentinel should yield nil, got %v", got)
	}
}

func TestParseUUIDSliceSkipsInvalid(t *testing.T) {
	q, _ := url.ParseQuery("favoriteIds=550e8400-e29b-41d4-a716-446655440000,not-a-uuid,6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	got := parseUUIDSlice(q, "favoriteIds")
	if len(got) != 2 {
		t.Fatalf("expected 2 valid ids, got %d", len(got))
	}
}

func TestParseTimePtr(t *testing.T) {
	q, _ := url.ParseQuery("a=2026-03-01&b=2026-03-01T12:00:00Z&c=tomorrow")

	if got := parseTimePtr(q, "a"); got == nil || !got.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date-only parse failed: %v", got)
	}
	if got := parseTimePtr(q, "b"); got == nil || got.Hour() != 12 {
		t.Errorf("RFC3339 parse failed: %v", got)
	}
	if got := parseTimePtr(q, "c"); got != nil {
		t.Errorf("unparseable date should yield nil, got %v", got)
	}
}
