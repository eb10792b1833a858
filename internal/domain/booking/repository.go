package booking

import (
	"context"

	"github.com/glowslot/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Catalog --------
	GetServicesByIDs(
		ctx context.Context,
		salonID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	// -------- Roster --------
	ListActiveStylists(
		ctx context.Context,
		salonID uint,
	) ([]models.Stylist, error)

	GetStylistForSalon(
		ctx context.Context,
		salonID uint,
		stylistID uint,
	) (*models.Stylist, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Day constraints --------
	SalonHolidayExists(
		ctx context.Context,
		salonID uint,
		date string,
	) (bool, error)

	StylistHolidaysOn(
		ctx context.Context,
		stylistIDs []uint,
		date string,
	) (map[uint]bool, error)

	BlockedRangesOn(
		ctx context.Context,
		stylistIDs []uint,
		date string,
	) (map[uint][]Range, error)

	BookedRangesOn(
		ctx context.Context,
		stylistIDs []uint,
		date string,
	) (map[uint][]Range, error)

	// -------- Booking (create / conflict) --------

	// CreateBooking inserts the booking, its service lines and the payment
	// row in one transaction, re-checking stylist conflicts, holidays and
	// blocked ranges under a row lock first. Returns time_conflict,
	// salon_holiday, stylist_holiday or blocked business errors.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
		payment *models.Payment,
	) error

	// -------- Booking (state change) --------
	GetBookingForSalon(
		ctx context.Context,
		bookingID uint,
		salonID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetPaymentForBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Payment, error)

	UpdateBookingAndPayment(
		ctx context.Context,
		b *models.Booking,
		p *models.Payment,
	) error

	// -------- Listing --------
	ListBookingsForDate(
		ctx context.Context,
		salonID uint,
		date string,
		stylistID uint, // 0 = all stylists
	) ([]models.Booking, error)

	ListBookingsForMonth(
		ctx context.Context,
		salonID uint,
		year int,
		month int,
	) ([]models.Booking, error)
}
