package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *BookingGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

// GetServicesByIDs returns the requested active services, in request
// order, or service_not_found if any ID is missing, inactive, or belongs
// to another salon.
func (r *BookingGormRepository) GetServicesByIDs(
	ctx context.Context,
	salonID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = true AND id IN ?", salonID, serviceIDs).
		Find(&services).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	out := make([]models.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		s, ok := byID[id]
		if !ok {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		out = append(out, s)
	}

	return out, nil
}

// --------------------------------------------------
// Roster
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveStylists(
	ctx context.Context,
	salonID uint,
) ([]models.Stylist, error) {

	var stylists []models.Stylist
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = true", salonID).
		Order("id ASC").
		Find(&stylists).Error; err != nil {
		return nil, err
	}
	return stylists, nil
}

func (r *BookingGormRepository) GetStylistForSalon(
	ctx context.Context,
	salonID uint,
	stylistID uint,
) (*models.Stylist, error) {

	var stylist models.Stylist
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", stylistID, salonID).
		First(&stylist).Error; err != nil {
		return nil, err
	}
	return &stylist, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = models.Customer{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Day constraints
// --------------------------------------------------

func (r *BookingGormRepository) SalonHolidayExists(
	ctx context.Context,
	salonID uint,
	date string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalonHoliday{}).
		Where("salon_id = ? AND date = ?", salonID, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) StylistHolidaysOn(
	ctx context.Context,
	stylistIDs []uint,
	date string,
) (map[uint]bool, error) {

	var holidays []models.StylistHoliday
	if err := r.db.WithContext(ctx).
		Where("stylist_id IN ? AND date = ?", stylistIDs, date).
		Find(&holidays).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]bool, len(holidays))
	for _, h := range holidays {
		out[h.StylistID] = true
	}
	return out, nil
}

func (r *BookingGormRepository) BlockedRangesOn(
	ctx context.Context,
	stylistIDs []uint,
	date string,
) (map[uint][]domain.Range, error) {

	var blocked []models.StylistBlockedSlot
	if err := r.db.WithContext(ctx).
		Where("stylist_id IN ? AND date = ?", stylistIDs, date).
		Order("start_minute ASC").
		Find(&blocked).Error; err != nil {
		return nil, err
	}

	out := make(map[uint][]domain.Range)
	for _, b := range blocked {
		out[b.StylistID] = append(out[b.StylistID], domain.Range{
			Start: b.StartMinute,
			End:   b.EndMinute,
		})
	}
	return out, nil
}

func (r *BookingGormRepository) BookedRangesOn(
	ctx context.Context,
	stylistIDs []uint,
	date string,
) (map[uint][]domain.Range, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("stylist_id", "start_minute", "end_minute").
		Where(
			"stylist_id IN ? AND date = ? AND status IN ?",
			stylistIDs, date, domain.OccupyingStatuses(),
		).
		Order("start_minute ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	out := make(map[uint][]domain.Range)
	for _, b := range bookings {
		out[b.StylistID] = append(out[b.StylistID], domain.Range{
			Start: b.StartMinute,
			End:   b.EndMinute,
		})
	}
	return out, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// CreateBooking re-validates availability inside the insert transaction:
// the overlap scan takes row locks, so two concurrent creates for
// overlapping intervals serialize and the loser sees the winner's row.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	payment *models.Payment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"stylist_id = ? AND date = ? AND status IN ? AND start_minute < ? AND end_minute > ?",
				b.StylistID, b.Date, domain.OccupyingStatuses(), b.EndMinute, b.StartMinute,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		var holidayCount int64
		if err := tx.Model(&models.SalonHoliday{}).
			Where("salon_id = ? AND date = ?", b.SalonID, b.Date).
			Count(&holidayCount).Error; err != nil {
			return err
		}
		if holidayCount > 0 {
			return httperr.ErrBusiness("salon_holiday")
		}

		if err := tx.Model(&models.StylistHoliday{}).
			Where("stylist_id = ? AND date = ?", b.StylistID, b.Date).
			Count(&holidayCount).Error; err != nil {
			return err
		}
		if holidayCount > 0 {
			return httperr.ErrBusiness("stylist_holiday")
		}

		var blockedCount int64
		if err := tx.Model(&models.StylistBlockedSlot{}).
			Where(
				"stylist_id = ? AND date = ? AND start_minute < ? AND end_minute > ?",
				b.StylistID, b.Date, b.EndMinute, b.StartMinute,
			).
			Count(&blockedCount).Error; err != nil {
			return err
		}
		if blockedCount > 0 {
			return httperr.ErrBusiness("blocked")
		}

		if err := tx.Create(b).Error; err != nil {
			return err
		}

		payment.BookingID = b.ID
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		return nil
	})
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForSalon(
	ctx context.Context,
	bookingID uint,
	salonID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND salon_id = ?", bookingID, salonID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) GetPaymentForBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BookingGormRepository) UpdateBookingAndPayment(
	ctx context.Context,
	b *models.Booking,
	p *models.Payment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		return tx.Save(p).Error
	})
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForDate(
	ctx context.Context,
	salonID uint,
	date string,
	stylistID uint,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Stylist").
		Preload("Services").
		Where("salon_id = ? AND date = ?", salonID, date)

	if stylistID != 0 {
		q = q.Where("stylist_id = ?", stylistID)
	}

	var bookings []models.Booking
	if err := q.Order("start_minute ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForMonth(
	ctx context.Context,
	salonID uint,
	year int,
	month int,
) ([]models.Booking, error) {

	prefix := fmt.Sprintf("%04d-%02d-%%", year, month)

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Stylist").
		Preload("Services").
		Where("salon_id = ? AND date LIKE ?", salonID, prefix).
		Order("date ASC, start_minute ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
