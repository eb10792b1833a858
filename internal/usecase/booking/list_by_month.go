package booking

import (
	"context"

	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/dto"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(
	repo domain.Repository,
) *ListBookingsByMonth {
	return &ListBookingsByMonth{
		repo: repo,
	}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	salonID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForMonth(ctx, salonID, year, month)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}
