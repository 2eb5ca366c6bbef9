package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const listingSelectColumns = `
	l.id, l.name, l.description, l.price_per_month, l.security_deposit, l.application_fee,
	l.beds, l.baths, l.square_feet, l.property_type, l.is_pets_allowed, l.is_parking_included,
	l.amenities, l.highlights, l.photo_urls, l.manager_id, l.posted_date,
	loc.id, loc.street, loc.city, loc.region, loc.country, loc.postal_code,
	ST_AsEWKT(loc.coordinates), loc.geohash`

// FindWithFilters выполняет один joined-запрос listings x locations с
// собранными предикатами. Лимит на этом слое не навязывается —
// неограниченная выборка задокументирована как известное ограничение.
func (a *ListingStorageAdapter) FindWithFilters(ctx context.Context, filters domain.SearchFilters) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ListingStorageAdapter",
		"method":    "FindWithFilters",
	})

	whereClause, args := applyFilters(filters)

	var query strings.Builder
	query.WriteString("SELECT ")
	query.WriteString(listingSelectColumns)
	query.WriteString(" FROM listings l JOIN locations loc ON l.location_id = loc.id ")
	query.WriteString(whereClause)
	query.WriteString(" ORDER BY l.posted_date DESC, l.id ASC")

	rows, err := a.pool.Query(ctx, query.String(), args...)
	if err != nil {
		repoLogger.Error("Failed to find listings with filters", err, nil)
		return nil, fmt.Errorf("failed to find listings with filters: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0)
	for rows.Next() {
		l, err := scanListingRow(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listing rows: %w", err)
	}

	repoLogger.Info("Successfully found listings", port.Fields{"count": len(listings)})
	return listings, nil
}

// GetByID возвращает объявление с локацией и сохраненными комнатами.
func (a *ListingStorageAdapter) GetByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, []domain.Room, error) {
	row := a.pool.QueryRow(ctx,
		"SELECT "+listingSelectColumns+
			" FROM listings l JOIN locations loc ON l.location_id = loc.id WHERE l.id = $1",
		listingID,
	)

	l, err := scanListingRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}

	rooms, err := a.roomsByListing(ctx, listingID)
	if err != nil {
		return nil, nil, err
	}
	return l, rooms, nil
}

func (a *ListingStorageAdapter) roomsByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Room, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT id, listing_id, name, price_per_month, security_deposit, capacity,
		       available_from, available_to, photo_urls
		FROM rooms
		WHERE listing_id = $1
		ORDER BY name ASC, id ASC`,
		listingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(
			&rm.ID, &rm.ListingID, &rm.Name, &rm.PricePerMonth, &rm.SecurityDeposit,
			&rm.Capacity, &rm.AvailableFrom, &rm.AvailableTo, &rm.PhotoURLs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// rowScanner покрывает и pgx.Row, и pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanListingRow читает одну строку joined-запроса и декодирует геоточку.
// Нечитаемая геометрия — это порча данных: ошибка фатальна для запроса,
// в нулевые координаты она молча не превращается.
func scanListingRow(row rowScanner) (*domain.Listing, error) {
	var l domain.Listing
	var pointText string

	if err := row.Scan(
		&l.ID, &l.Name, &l.Description, &l.PricePerMonth, &l.SecurityDeposit, &l.ApplicationFee,
		&l.Beds, &l.Baths, &l.SquareFeet, &l.PropertyType, &l.IsPetsAllowed, &l.IsParkingIncluded,
		&l.Amenities, &l.Highlights, &l.PhotoURLs, &l.ManagerID, &l.PostedDate,
		&l.Location.ID, &l.Location.Street, &l.Location.City, &l.Location.Region,
		&l.Location.Country, &l.Location.PostalCode, &pointText, &l.Location.Geohash,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}

	coords, err := ParsePointText(pointText)
	if err != nil {
		return nil, err
	}
	l.Location.Coordinates = coords

	return &l, nil
}
