package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eventbook/internal/events"
	"eventbook/internal/shared/apierror"
	"eventbook/internal/users"
)

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	// CreateWithSeatCheck runs the whole reservation inside one transaction
	// with the event row locked: duplicate check, seat check, seat decrement
	// and booking insert all see the same locked-row state. The booking's
	// TotalAmount is computed from the locked event's price.
	CreateWithSeatCheck(ctx context.Context, booking *Booking) error

	// CancelWithSeatRestore flips the booking to CANCELLED and returns its
	// seats to the event, locking both rows. A missing event does not block
	// the cancellation.
	CancelWithSeatRestore(ctx context.Context, bookingID uuid.UUID) (*Booking, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	FindWithEventsByUserID(ctx context.Context, userID uuid.UUID) ([]UserBooking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithSeatCheck(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userCount int64
		if err := tx.Model(&users.User{}).Where("id = ?", booking.UserID).Count(&userCount).Error; err != nil {
			return fmt.Errorf("failed to look up user: %w", err)
		}
		if userCount == 0 {
			return apierror.NotFound("User not found with ID: " + booking.UserID.String())
		}

		var event events.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", booking.EventID).
			First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Event not found with ID: " + booking.EventID.String())
			}
			return fmt.Errorf("failed to lock event: %w", err)
		}

		var activeCount int64
		err = tx.Model(&Booking{}).
			Where("user_id = ? AND event_id = ? AND status <> ?",
				booking.UserID, booking.EventID, StatusCancelled).
			Count(&activeCount).Error
		if err != nil {
			return fmt.Errorf("failed to check existing bookings: %w", err)
		}
		if activeCount > 0 {
			return apierror.Conflict("User has already booked this event")
		}

		if !event.HasAvailability(booking.SeatsBooked) {
			return apierror.Conflict(fmt.Sprintf(
				"Insufficient seats available. Requested: %d, Available: %d",
				booking.SeatsBooked, event.AvailableSeats))
		}

		booking.TotalAmount = event.Price.Mul(decimal.NewFromInt(int64(booking.SeatsBooked))).Round(2)
		booking.Status = StatusBooked

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		err = tx.Model(&events.Event{}).
			Where("id = ?", booking.EventID).
			Update("available_seats", gorm.Expr("available_seats - ?", booking.SeatsBooked)).Error
		if err != nil {
			return fmt.Errorf("failed to update available seats: %w", err)
		}

		return nil
	})
}

func (r *repository) CancelWithSeatRestore(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", bookingID).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Booking not found with ID: " + bookingID.String())
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if !booking.Status.CanBeCancelled() {
			return apierror.Conflict("Booking is already cancelled")
		}

		// The event may have been removed from the catalog; the
		// cancellation still goes through, the seats just have nowhere
		// to return to.
		var event events.Event
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", booking.EventID).
			First(&event).Error
		switch {
		case err == nil:
			err = tx.Model(&events.Event{}).
				Where("id = ?", booking.EventID).
				Update("available_seats", gorm.Expr("available_seats + ?", booking.SeatsBooked)).Error
			if err != nil {
				return fmt.Errorf("failed to restore available seats: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// nothing to restore
		default:
			return fmt.Errorf("failed to lock event: %w", err)
		}

		booking.Status = StatusCancelled
		if err := tx.Model(&Booking{}).
			Where("id = ?", booking.ID).
			Update("status", StatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) FindWithEventsByUserID(ctx context.Context, userID uuid.UUID) ([]UserBooking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("booking_date asc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}

	result := make([]UserBooking, 0, len(list))
	for _, b := range list {
		var event events.Event
		entry := UserBooking{Booking: b}
		err := r.db.WithContext(ctx).Where("id = ?", b.EventID).First(&event).Error
		if err == nil {
			entry.Event = &event
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, nil
}
