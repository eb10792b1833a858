package booking

import (
	"context"

	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/dto"
	"github.com/glowslot/salon-scheduler/internal/models"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(
	repo domain.Repository,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	salonID uint,
	date string,
	stylistID uint,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForDate(ctx, salonID, date, stylistID)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}

func toListDTOs(bookings []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		names := make([]string, 0, len(b.Services))
		total := 0.0
		for _, s := range b.Services {
			names = append(names, s.Name)
			total += s.Price
		}

		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			Reference:     b.Reference,
			Date:          b.Date,
			Time:          domain.FormatMinute(b.StartMinute),
			StartMinute:   b.StartMinute,
			EndMinute:     b.EndMinute,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			CustomerName:  b.Customer.Name,
			StylistName:   b.Stylist.Name,
			ServiceNames:  names,
			TotalPrice:    total,
			CreatedAt:     b.CreatedAt,
		})
	}
	return out
}
