package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	"github.com/shareloop/service-sharing/internal/domain/errs"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Status    string    `gorm:"not null;size:20;index"`
	StartAt   time.Time `gorm:"not null;index"`
	EndAt     time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).Create(toBookingModel(b)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByBooker retrieves all bookings requested by a user, newest start first.
func (r *GormBookingRepository) FindByBooker(ctx context.Context, bookerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("booker_id = ?", bookerID).
		Order("start_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by booker: %w", err)
	}
	return toDomainBookings(models)
}

// FindByBookerAndStatus retrieves a user's bookings in a given status.
func (r *GormBookingRepository) FindByBookerAndStatus(ctx context.Context, bookerID uuid.UUID, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("booker_id = ? AND status = ?", bookerID, status.String()).
		Order("start_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by booker and status: %w", err)
	}
	return toDomainBookings(models)
}

// FindByOwner retrieves all bookings of items listed by a user.
func (r *GormBookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Order("bookings.start_at DESC, bookings.id DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by owner: %w", err)
	}
	return toDomainBookings(models)
}

// FindByOwnerAndStatus retrieves bookings of a user's items in a given status.
func (r *GormBookingRepository) FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ? AND bookings.status = ?", ownerID, status.String()).
		Order("bookings.start_at DESC, bookings.id DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by owner and status: %w", err)
	}
	return toDomainBookings(models)
}

// FindNextForItem retrieves the earliest APPROVED booking of the item
// starting strictly after the given instant, or nil if there is none.
func (r *GormBookingRepository) FindNextForItem(ctx context.Context, itemID uuid.UUID, after time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ? AND start_at > ?", itemID, bookingDomain.StatusApproved.String(), after).
		Order("start_at ASC, id ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next booking for item: %w", err)
	}
	return toDomainBooking(&model)
}

// FindLastForItem retrieves the most recent APPROVED booking of the item
// starting strictly before the given instant, or nil if there is none.
func (r *GormBookingRepository) FindLastForItem(ctx context.Context, itemID uuid.UUID, before time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ? AND start_at < ?", itemID, bookingDomain.StatusApproved.String(), before).
		Order("start_at DESC, id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last booking for item: %w", err)
	}
	return toDomainBooking(&model)
}

// HasCompletedBooking reports whether the user has an APPROVED booking of the
// item that ended strictly before the given instant.
func (r *GormBookingRepository) HasCompletedBooking(ctx context.Context, itemID, bookerID uuid.UUID, before time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_at < ?",
			itemID, bookerID, bookingDomain.StatusApproved.String(), before).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check completed bookings: %w", err)
	}
	return count > 0, nil
}

// UpdateStatusIfWaiting atomically moves a booking from WAITING to the target
// status. The status check and the write are a single conditional UPDATE, so
// of two racing decisions exactly one sees RowsAffected == 1.
func (r *GormBookingRepository) UpdateStatusIfWaiting(ctx context.Context, id uuid.UUID, target bookingDomain.Status, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, bookingDomain.StatusWaiting.String()).
		Updates(map[string]interface{}{
			"status":     target.String(),
			"updated_at": at,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// --- Conversion Helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        b.ID(),
		BookerID:  b.BookerID(),
		ItemID:    b.ItemID(),
		Status:    b.Status().String(),
		StartAt:   b.Start(),
		EndAt:     b.End(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.BookerID,
		m.ItemID,
		status,
		m.StartAt,
		m.EndAt,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = b
	}
	return bookings, nil
}
