package usecase

import (
	"context"
	"errors"
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

func TestGetListingWithStoredRooms(t *testing.T) {
	current := storedListing()
	rooms := []domain.Room{
		{ID: uuid.New(), Name: "Room A", PricePerMonth: 700},
		{ID: uuid.New(), Name: "Room B", PricePerMonth: 800},
	}
	storage := &fakeStorage{listing: current, rooms: rooms}
	uc := NewGetListingUseCase(storage)

	details, err := uc.Execute(context.Background(), current.ID)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(details.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(details.Rooms))
	}
	for _, rv := range details.Rooms {
		if rv.Synthetic {
			t.Errorf("stored room wrongly marked synthetic: %+v", rv)
		}
	}
}

func TestGetListingSynthesizesRoomWhenNoneStored(t *testing.T) {
	current := storedListing()
	storage := &fakeStorage{listing: current, rooms: nil}
	uc := NewGetListingUseCase(storage)

	details, err := uc.Execute(context.Background(), current.ID)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(details.Rooms) != 1 {
		t.Fatalf("expected exactly one synthesized room, got %d", len(details.Rooms))
	}
	rv := details.Rooms[0]
	if !rv.Synthetic {
		t.Fatal("synthesized room must be marked synthetic")
	}
	// Синтетическая комната зеркалит поля объявления.
	if rv.Room.PricePerMonth != current.PricePerMonth {
		t.Errorf("price not mirrored: %v != %v", rv.Room.PricePerMonth, current.PricePerMonth)
	}
	if rv.Room.Capacity != current.Beds {
		t.Errorf("capacity must mirror beds: %v != %v", rv.Room.Capacity, current.Beds)
	}
}

func TestGetListingNotFound(t *testing.T) {
	storage := &fakeStorage{getErr: domain.ErrNotFound}
	uc := NewGetListingUseCase(storage)

	_, err := uc.Execute(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
