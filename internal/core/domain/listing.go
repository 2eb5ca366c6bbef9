package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coordinates — десериализованная географическая точка.
// Широта/долгота в WGS84, как их отдает геокодер и хранит PostGIS.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location — адрес и геоточка объявления. Всегда принадлежит ровно одному Listing.
// Поле Coordinates выводится только из успешного геокодирования адреса,
// руками оно никогда не задается.
type Location struct {
	ID          uuid.UUID
	Street      string
	City        string
	Region      string // опционально
	Country     string
	PostalCode  string // опционально
	Coordinates Coordinates
	Geohash     string
}

// Listing — карточка арендного объекта.
type Listing struct {
	ID               uuid.UUID
	Name             string
	Description      string
	PricePerMonth    float64
	SecurityDeposit  float64
	ApplicationFee   float64
	Beds             int
	Baths            float64
	SquareFeet       int
	PropertyType     string
	IsPetsAllowed    bool
	IsParkingIncluded bool
	Amenities        []string
	Highlights       []string
	PhotoURLs        []string
	ManagerID        string
	PostedDate       time.Time

	Location Location
}

// Room — опциональная под-единица объявления (legacy).
type Room struct {
	ID             uuid.UUID
	ListingID      uuid.UUID
	Name           string
	PricePerMonth  float64
	SecurityDeposit float64
	Capacity       int
	AvailableFrom  time.Time
	AvailableTo    time.Time
	PhotoURLs      []string
}

// RoomView — комната в ответе getOne. Synthetic=true означает, что в базе
// нет ни одной комнаты и представление собрано из полей самого Listing;
// такая комната никогда не пишется в хранилище.
type RoomView struct {
	Room      Room
	Synthetic bool
}

// ListingDetails — объявление вместе со списком комнат (реальных или
// одной синтезированной).
type ListingDetails struct {
	Listing Listing
	Rooms   []RoomView
}

// SynthesizeRoomView собирает транзиентную комнату из полей объявления.
// Цена и вместимость зеркалят PricePerMonth и Beds.
func SynthesizeRoomView(l Listing) RoomView {
	return RoomView{
		Room: Room{
			ListingID:       l.ID,
			Name:            l.Name,
			PricePerMonth:   l.PricePerMonth,
			SecurityDeposit: l.SecurityDeposit,
			Capacity:        l.Beds,
			PhotoURLs:       l.PhotoURLs,
		},
		Synthetic: true,
	}
}
