package postgres

import (
	"context"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListingStorageAdapter реализует ListingStoragePort для PostgreSQL+PostGIS.
type ListingStorageAdapter struct {
	pool *pgxpool.Pool
}

// NewListingStorageAdapter создает новый экземпляр адаптера.
func NewListingStorageAdapter(pool *pgxpool.Pool) (*ListingStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ListingStorageAdapter{
		pool: pool,
	}, nil
}

const insertLocationSQL = `
	INSERT INTO locations (id, street, city, region, country, postal_code, coordinates, geohash)
	VALUES ($1, $2, $3, $4, $5, $6, ST_GeomFromEWKT($7), $8)
`

const insertListingSQL = `
	INSERT INTO listings (
		id, name, description, price_per_month, security_deposit, application_fee,
		beds, baths, square_feet, property_type, is_pets_allowed, is_parking_included,
		amenities, highlights, photo_urls, location_id, manager_id, posted_date
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10, $11, $12,
		$13, $14, $15, $16, $17, $18
	)
`

// CreateWithLocation пишет Location и Listing в одной транзакции.
// Оба появляются вместе или не появляются вовсе — осиротевших Location
// этот путь не оставляет.
func (a *ListingStorageAdapter) CreateWithLocation(ctx context.Context, loc domain.Location, l domain.Listing) (*domain.Listing, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	pointText := PointLiteral(loc.Coordinates.Longitude, loc.Coordinates.Latitude)
	loc.Geohash = locationGeohash(loc.Coordinates)

	if _, err := tx.Exec(ctx, insertLocationSQL,
		loc.ID, loc.Street, loc.City, loc.Region, loc.Country, loc.PostalCode,
		pointText, loc.Geohash,
	); err != nil {
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}

	if _, err := tx.Exec(ctx, insertListingSQL,
		l.ID, l.Name, l.Description, l.PricePerMonth, l.SecurityDeposit, l.ApplicationFee,
		l.Beds, l.Baths, l.SquareFeet, l.PropertyType, l.IsPetsAllowed, l.IsParkingIncluded,
		l.Amenities, l.Highlights, l.PhotoURLs, loc.ID, l.ManagerID, l.PostedDate,
	); err != nil {
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	l.Location = loc
	return &l, nil
}

// UpdateWithLocation обновляет обе записи в одной транзакции.
// coordinates здесь уже либо старая точка, либо результат повторного
// геокода — решение принимает оркестратор, адаптер пишет что дали.
func (a *ListingStorageAdapter) UpdateWithLocation(ctx context.Context, loc domain.Location, l domain.Listing) (*domain.Listing, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	pointText := PointLiteral(loc.Coordinates.Longitude, loc.Coordinates.Latitude)
	loc.Geohash = locationGeohash(loc.Coordinates)

	if _, err := tx.Exec(ctx, `
		UPDATE locations
		SET street = $2, city = $3, region = $4, country = $5, postal_code = $6,
		    coordinates = ST_GeomFromEWKT($7), geohash = $8
		WHERE id = $1`,
		loc.ID, loc.Street, loc.City, loc.Region, loc.Country, loc.PostalCode,
		pointText, loc.Geohash,
	); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE listings
		SET name = $2, description = $3, price_per_month = $4, security_deposit = $5,
		    application_fee = $6, beds = $7, baths = $8, square_feet = $9,
		    property_type = $10, is_pets_allowed = $11, is_parking_included = $12,
		    amenities = $13, highlights = $14, photo_urls = $15
		WHERE id = $1`,
		l.ID, l.Name, l.Description, l.PricePerMonth, l.SecurityDeposit,
		l.ApplicationFee, l.Beds, l.Baths, l.SquareFeet,
		l.PropertyType, l.IsPetsAllowed, l.IsParkingIncluded,
		l.Amenities, l.Highlights, l.PhotoURLs,
	); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	l.Location = loc
	return &l, nil
}

// DeleteCascade атомарно удаляет зависимые leases и applications, само
// объявление и его локацию. Любая ошибка внутри — полный откат, ни одно
// из четырех удалений не применяется.
func (a *ListingStorageAdapter) DeleteCascade(ctx context.Context, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "ListingStorageAdapter",
		"method":     "DeleteCascade",
		"listing_id": listingID.String(),
	})

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return &domain.TransactionFailure{Stage: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	var locationID uuid.UUID
	if err := tx.QueryRow(ctx,
		`SELECT location_id FROM listings WHERE id = $1`, listingID,
	).Scan(&locationID); err != nil {
		return &domain.TransactionFailure{Stage: "resolve location", Err: err}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM leases WHERE listing_id = $1`, listingID); err != nil {
		return &domain.TransactionFailure{Stage: "delete leases", Err: err}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE listing_id = $1`, listingID); err != nil {
		return &domain.TransactionFailure{Stage: "delete applications", Err: err}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM rooms WHERE listing_id = $1`, listingID); err != nil {
		return &domain.TransactionFailure{Stage: "delete rooms", Err: err}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM listings WHERE id = $1`, listingID); err != nil {
		return &domain.TransactionFailure{Stage: "delete listing", Err: err}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM locations WHERE id = $1`, locationID); err != nil {
		return &domain.TransactionFailure{Stage: "delete location", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &domain.TransactionFailure{Stage: "commit", Err: err}
	}

	repoLogger.Info("Listing cascade delete committed", port.Fields{"location_id": locationID.String()})
	return nil
}
