package booking

import (
	"context"
	"errors"

	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/models"
)

// fakeRepo is an in-memory domain.Repository for use-case tests.
type fakeRepo struct {
	salon    *models.Salon
	services []models.Service
	stylists []models.Stylist
	customer *models.Customer

	salonHoliday    bool
	stylistHolidays map[uint]bool
	blocked         map[uint][]domain.Range
	booked          map[uint][]domain.Range

	bookings map[uint]*models.Booking
	payments map[uint]*models.Payment

	createErr      error
	created        *models.Booking
	createdPayment *models.Payment
	updateCalls    int
	txnCalls       int
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon: &models.Salon{
			ID:                 1,
			Name:               "Glow Salon",
			Slug:               "glow-salon",
			Timezone:           "Asia/Kolkata",
			OpenMinute:         600,
			CloseMinute:        1080,
			SlotGranularityMin: 30,
			MinAdvanceMinutes:  40,
		},
		customer:        &models.Customer{ID: 11, SalonID: 1, Name: "Priya", Phone: "9999"},
		stylistHolidays: map[uint]bool{},
		blocked:         map[uint][]domain.Range{},
		booked:          map[uint][]domain.Range{},
		bookings:        map[uint]*models.Booking{},
		payments:        map[uint]*models.Payment{},
	}
}

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, errors.New("salon not found")
	}
	return f.salon, nil
}

func (f *fakeRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	if f.salon == nil || f.salon.Slug != slug {
		return nil, errors.New("salon not found")
	}
	return f.salon, nil
}

func (f *fakeRepo) GetServicesByIDs(_ context.Context, _ uint, ids []uint) ([]models.Service, error) {
	byID := map[uint]models.Service{}
	for _, s := range f.services {
		byID[s.ID] = s
	}

	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok || !s.Active {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) ListActiveStylists(_ context.Context, _ uint) ([]models.Stylist, error) {
	var out []models.Stylist
	for _, st := range f.stylists {
		if st.Active {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetStylistForSalon(_ context.Context, _ uint, stylistID uint) (*models.Stylist, error) {
	for i := range f.stylists {
		if f.stylists[i].ID == stylistID {
			return &f.stylists[i], nil
		}
	}
	return nil, errors.New("stylist not found")
}

func (f *fakeRepo) GetOrCreateCustomer(_ context.Context, _ uint, _, _, _ string) (*models.Customer, error) {
	return f.customer, nil
}

func (f *fakeRepo) SalonHolidayExists(_ context.Context, _ uint, _ string) (bool, error) {
	return f.salonHoliday, nil
}

func (f *fakeRepo) StylistHolidaysOn(_ context.Context, _ []uint, _ string) (map[uint]bool, error) {
	return f.stylistHolidays, nil
}

func (f *fakeRepo) BlockedRangesOn(_ context.Context, _ []uint, _ string) (map[uint][]domain.Range, error) {
	return f.blocked, nil
}

func (f *fakeRepo) BookedRangesOn(_ context.Context, _ []uint, _ string) (map[uint][]domain.Range, error) {
	return f.booked, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking, p *models.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = uint(len(f.bookings) + 1)
	p.BookingID = b.ID
	f.created = b
	f.createdPayment = p
	f.bookings[b.ID] = b
	f.payments[b.ID] = p
	return nil
}

func (f *fakeRepo) GetBookingForSalon(_ context.Context, bookingID, salonID uint) (*models.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok || b.SalonID != salonID {
		return nil, errors.New("booking not found")
	}
	return b, nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	f.updateCalls++
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeRepo) GetPaymentForBooking(_ context.Context, bookingID uint) (*models.Payment, error) {
	p, ok := f.payments[bookingID]
	if !ok {
		return nil, errors.New("payment not found")
	}
	return p, nil
}

func (f *fakeRepo) UpdateBookingAndPayment(_ context.Context, b *models.Booking, p *models.Payment) error {
	f.txnCalls++
	f.bookings[b.ID] = b
	f.payments[b.ID] = p
	return nil
}

func (f *fakeRepo) ListBookingsForDate(_ context.Context, salonID uint, date string, stylistID uint) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.SalonID != salonID || b.Date != date {
			continue
		}
		if stylistID != 0 && b.StylistID != stylistID {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeRepo) ListBookingsForMonth(_ context.Context, salonID uint, _, _ int) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.SalonID == salonID {
			out = append(out, *b)
		}
	}
	return out, nil
}
