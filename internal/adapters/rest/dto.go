package rest

import (
	"time"

	"catalog-service/internal/core/domain"
)

// CoordinatesResponse — клиентская координатная пара.
type CoordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationResponse — адрес плюс декомпозированная геоточка.
type LocationResponse struct {
	ID          string              `json:"id"`
	Street      string              `json:"street"`
	City        string              `json:"city"`
	Region      string              `json:"region,omitempty"`
	Country     string              `json:"country"`
	PostalCode  string              `json:"postalCode,omitempty"`
	Coordinates CoordinatesResponse `json:"coordinates"`
}

// ListingResponse — карточка объявления.
type ListingResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	PricePerMonth     float64          `json:"pricePerMonth"`
	SecurityDeposit   float64          `json:"securityDeposit"`
	ApplicationFee    float64          `json:"applicationFee"`
	Beds              int              `json:"beds"`
	Baths             float64          `json:"baths"`
	SquareFeet        int              `json:"squareFeet"`
	PropertyType      string           `json:"propertyType"`
	IsPetsAllowed     bool             `json:"isPetsAllowed"`
	IsParkingIncluded bool             `json:"isParkingIncluded"`
	Amenities         []string         `json:"amenities"`
	Highlights        []string         `json:"highlights"`
	PhotoURLs         []string         `json:"photoUrls"`
	ManagerID         string           `json:"managerId"`
	PostedDate        time.Time        `json:"postedDate"`
	Location          LocationResponse `json:"location"`

	// Нефатальные предупреждения медиа-пайплайна (create/update).
	Warnings []string `json:"warnings,omitempty"`
}

// RoomResponse — комната; synthetic=true помечает транзиентное
// представление, собранное из полей самого объявления.
type RoomResponse struct {
	ID              string    `json:"id,omitempty"`
	Name            string    `json:"name"`
	PricePerMonth   float64   `json:"pricePerMonth"`
	SecurityDeposit float64   `json:"securityDeposit"`
	Capacity        int       `json:"capacity"`
	AvailableFrom   time.Time `json:"availableFrom,omitempty"`
	AvailableTo     time.Time `json:"availableTo,omitempty"`
	PhotoURLs       []string  `json:"photoUrls"`
	Synthetic       bool      `json:"synthetic"`
}

// ListingDetailsResponse — объявление с комнатами.
type ListingDetailsResponse struct {
	ListingResponse
	Rooms []RoomResponse `json:"rooms"`
}

// ListingsResponse — ответ поиска.
type ListingsResponse struct {
	Data []ListingResponse `json:"data"`
}

func toListingResponse(l domain.Listing, warnings []string) ListingResponse {
	return ListingResponse{
		ID:                l.ID.String(),
		Name:              l.Name,
		Description:       l.Description,
		PricePerMonth:     l.PricePerMonth,
		SecurityDeposit:   l.SecurityDeposit,
		ApplicationFee:    l.ApplicationFee,
		Beds:              l.Beds,
		Baths:             l.Baths,
		SquareFeet:        l.SquareFeet,
		PropertyType:      l.PropertyType,
		IsPetsAllowed:     l.IsPetsAllowed,
		IsParkingIncluded: l.IsParkingIncluded,
		Amenities:         l.Amenities,
		Highlights:        l.Highlights,
		PhotoURLs:         l.PhotoURLs,
		ManagerID:         l.ManagerID,
		PostedDate:        l.PostedDate,
		Location: LocationResponse{
			ID:         l.Location.ID.String(),
			Street:     l.Location.Street,
			City:       l.Location.City,
			Region:     l.Location.Region,
			Country:    l.Location.Country,
			PostalCode: l.Location.PostalCode,
			Coordinates: CoordinatesResponse{
				Latitude:  l.Location.Coordinates.Latitude,
				Longitude: l.Location.Coordinates.Longitude,
			},
		},
		Warnings: warnings,
	}
}

func toRoomResponse(rv domain.RoomView) RoomResponse {
	resp := RoomResponse{
		Name:            rv.Room.Name,
		PricePerMonth:   rv.Room.PricePerMonth,
		SecurityDeposit: rv.Room.SecurityDeposit,
		Capacity:        rv.Room.Capacity,
		AvailableFrom:   rv.Room.AvailableFrom,
		AvailableTo:     rv.Room.AvailableTo,
		PhotoURLs:       rv.Room.PhotoURLs,
		Synthetic:       rv.Synthetic,
	}
	// У синтетической комнаты нет персистентного id.
	if !rv.Synthetic {
		resp.ID = rv.Room.ID.String()
	}
	return resp
}
