package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

const defaultTimeout = 10 * time.Second

// GeocoderAPIClient — клиент внешнего геокодера. Явно конструируется и
// инжектится в композиционном корне, никакого глобального состояния:
// в тестах подменяется фейком или httptest-сервером через baseURL.
type GeocoderAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGeocoderAPIClient — конструктор.
func NewGeocoderAPIClient(baseURL, apiKey string, timeout time.Duration) (*GeocoderAPIClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("geocoder: baseURL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GeocoderAPIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		// Зависший провайдер эквивалентен отказу — ждём не дольше таймаута.
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// joinAddress собирает одну строку адреса: street, city, [region],
// [postal code], country. Регион и индекс — единственные опциональные части.
func joinAddress(addr domain.AddressInput) string {
	parts := make([]string, 0, 5)
	parts = append(parts, addr.Street, addr.City)
	if addr.Region != "" {
		parts = append(parts, addr.Region)
	}
	if addr.PostalCode != "" {
		parts = append(parts, addr.PostalCode)
	}
	parts = append(parts, addr.Country)
	return strings.Join(parts, ", ")
}

// Geocode выполняет один вызов провайдера. Ретраев внутри нет — политика
// повторов, если она нужна, принадлежит оркестратору.
func (c *GeocoderAPIClient) Geocode(ctx context.Context, addr domain.AddressInput) (domain.Coordinates, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	address := joinAddress(addr)
	clientLogger := logger.WithFields(port.Fields{
		"component": "GeocoderAPIClient",
		"address":   address,
	})

	query := url.Values{}
	query.Set("address", address)
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}
	reqURL := c.baseURL + "/geocode/json?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocoder: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Geocode request failed", err, nil)
		return domain.Coordinates{}, &domain.GeocodeFailure{Address: address, Status: "TRANSPORT_ERROR", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("geocoder returned non-200 status: %d", resp.StatusCode)
		clientLogger.Error("Received non-OK response from geocoder", err, port.Fields{"status_code": resp.StatusCode})
		return domain.Coordinates{}, &domain.GeocodeFailure{Address: address, Status: fmt.Sprintf("HTTP_%d", resp.StatusCode), Err: err}
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		clientLogger.Error("Failed to decode geocoder response", err, nil)
		return domain.Coordinates{}, &domain.GeocodeFailure{Address: address, Status: "BAD_RESPONSE", Err: err}
	}

	// Успех только при статусе "OK" И хотя бы одном кандидате.
	// Любой другой исход терминален для вызвавшей операции.
	if body.Status != "OK" || len(body.Results) == 0 {
		clientLogger.Warn("Geocoder did not resolve address", port.Fields{
			"provider_status": body.Status,
			"results_count":   len(body.Results),
		})
		return domain.Coordinates{}, &domain.GeocodeFailure{Address: address, Status: body.Status}
	}

	loc := body.Results[0].Geometry.Location
	clientLogger.Debug("Address geocoded", port.Fields{"lat": loc.Lat, "lng": loc.Lng})
	return domain.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
