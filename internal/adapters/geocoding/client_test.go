package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"catalog-service/internal/core/domain"
)

func TestJoinAddress(t *testing.T) {
	tests := []struct {
		name string
		addr domain.AddressInput
		want string
	}{
		{
			name: "full address",
			addr: domain.AddressInput{
				Street: "12 Beach Rd", City: "Cape Town", Region: "Western Cape",
				PostalCode: "8005", Country: "South Africa",
			},
			want: "12 Beach Rd, Cape Town, Western Cape, 8005, South Africa",
		},
		{
			name: "region and postal code optional",
			addr: domain.AddressInput{
				Street: "1 Main St", City: "Austin", Country: "USA",
			},
			want: "1 Main St, Austin, USA",
		},
		{
			name: "postal code without region",
			addr: domain.AddressInput{
				Street: "5 High St", City: "London", PostalCode: "E1 6AN", Country: "UK",
			},
			want: "5 High St, London, E1 6AN, UK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinAddress(tt.addr); got != tt.want {
				t.Errorf("joinAddress = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGeocodeSuccess(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"geometry": {"location": {"lat": -33.9249, "lng": 18.4241}}},
				{"geometry": {"location": {"lat": 0, "lng": 0}}}
			]
		}`))
	}))
	defer server.Close()

	client, err := NewGeocoderAPIClient(server.URL, "test-key", time.Second)
	if err != nil {
		t.Fatalf("NewGeocoderAPIClient: %v", err)
	}

	coords, err := client.Geocode(context.Background(), domain.AddressInput{
		Street: "12 Beach Rd", City: "Cape Town", Country: "South Africa",
	})
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}

	// Первый кандидат, остальные игнорируются.
	if coords.Latitude != -33.9249 || coords.Longitude != 18.4241 {
		t.Errorf("unexpected coordinates: %+v", coords)
	}
	params, _ := url.ParseQuery(gotQuery)
	if params.Get("key") != "test-key" {
		t.Errorf("api key not propagated: %q", gotQuery)
	}
	if params.Get("address") != "12 Beach Rd, Cape Town, South Africa" {
		t.Errorf("address not propagated: %q", params.Get("address"))
	}
}

func TestGeocodeZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	client, _ := NewGeocoderAPIClient(server.URL, "", time.Second)
	_, err := client.Geocode(context.Background(), domain.AddressInput{
		Street: "nowhere", City: "void", Country: "none",
	})

	var failure *domain.GeocodeFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *domain.GeocodeFailure, got %v", err)
	}
	if failure.Status != "ZERO_RESULTS" {
		t.Errorf("provider status lost: %q", failure.Status)
	}
}

func TestGeocodeOKStatusButEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "results": []}`))
	}))
	defer server.Close()

	client, _ := NewGeocoderAPIClient(server.URL, "", time.Second)
	_, err := client.Geocode(context.Background(), domain.AddressInput{
		Street: "1 Main St", City: "Austin", Country: "USA",
	})
	if err == nil {
		t.Fatal("OK status with zero candidates must still fail")
	}
}

func TestGeocodeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, _ := NewGeocoderAPIClient(server.URL, "", time.Second)
	_, err := client.Geocode(context.Background(), domain.AddressInput{
		Street: "1 Main St", City: "Austin", Country: "USA",
	})

	var failure *domain.GeocodeFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *domain.GeocodeFailure, got %v", err)
	}
	if failure.Status != "HTTP_502" {
		t.Errorf("unexpected status: %q", failure.Status)
	}
}

func TestGeocodeMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "results": [`))
	}))
	defer server.Close()

	client, _ := NewGeocoderAPIClient(server.URL, "", time.Second)
	_, err := client.Geocode(context.Background(), domain.AddressInput{
		Street: "1 Main St", City: "Austin", Country: "USA",
	})

	var failure *domain.GeocodeFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *domain.GeocodeFailure, got %v", err)
	}
	if failure.Status != "BAD_RESPONSE" {
		t.Errorf("unexpected status: %q", failure.Status)
	}
}

func TestNewGeocoderAPIClientRequiresBaseURL(t *testing.T) {
	if _, err := NewGeocoderAPIClient("", "key", time.Second); err == nil {
		t.Fatal("empty baseURL must be rejected")
	}
}
