package bookings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventbook/internal/auth"
	"eventbook/internal/notifications"
	"eventbook/internal/shared/apierror"
	"eventbook/internal/shared/constants"
	"eventbook/internal/users"
	"eventbook/pkg/cache"
	"eventbook/pkg/logger"
)

// Notifier publishes booking lifecycle notifications. Delivery is
// fire-and-forget from the booking path's point of view.
type Notifier interface {
	PublishBookingNotification(ctx context.Context, notification notifications.BookingNotification) error
}

type Service interface {
	SetNotifier(notifier Notifier)
	SetCacheService(cacheService cache.Service)

	BookEvent(ctx context.Context, authHeader string, req *BookEventRequest) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*Booking, error)
	GetBookingByID(ctx context.Context, bookingID string) (*Booking, error)
	GetUserBookings(ctx context.Context, authHeader string, query *GetUserBookingsQuery) ([]UserBooking, error)
}

type service struct {
	repo         Repository
	tokens       *auth.TokenService
	notifier     Notifier
	cacheService cache.Service
}

func NewService(repo Repository, tokens *auth.TokenService) Service {
	return &service{
		repo:   repo,
		tokens: tokens,
	}
}

func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// SetCacheService injects the catalog cache so seat mutations can evict it.
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) BookEvent(ctx context.Context, authHeader string, req *BookEventRequest) (*Booking, error) {
	userID, err := s.resolveUserID(authHeader)
	if err != nil {
		return nil, err
	}

	if req == nil {
		return nil, apierror.BadRequest("Booking data cannot be null")
	}
	if strings.TrimSpace(req.EventID) == "" {
		return nil, apierror.BadRequest("Event ID is required")
	}
	// A supplied but unparseable id names an event that cannot exist.
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apierror.NotFound("Event not found with ID: " + req.EventID)
	}
	if req.SeatsBooked <= 0 {
		return nil, apierror.BadRequest("Number of seats must be greater than 0")
	}

	paymentID := strings.TrimSpace(req.PaymentID)
	if paymentID == "" {
		paymentID = fmt.Sprintf("PAY_%d", time.Now().UnixMilli())
	}

	booking := &Booking{
		ID:          uuid.New(),
		UserID:      userID,
		EventID:     eventID,
		PaymentID:   paymentID,
		SeatsBooked: req.SeatsBooked,
		Status:      StatusBooked,
	}

	if err := s.repo.CreateWithSeatCheck(ctx, booking); err != nil {
		return nil, err
	}

	logger.GetDefault().LogBookingCreated(ctx, booking.ID.String(),
		booking.EventID.String(), booking.UserID.String())
	s.invalidateCatalogCache(ctx)
	s.notify(ctx, notifications.TypeBookingConfirmed, booking)

	return booking, nil
}

func (s *service) CancelBooking(ctx context.Context, bookingID string) (*Booking, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.CancelWithSeatRestore(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogBookingCancelled(ctx, booking.ID.String(),
		booking.EventID.String(), booking.UserID.String())
	s.invalidateCatalogCache(ctx)
	s.notify(ctx, notifications.TypeBookingCancelled, booking)

	return booking, nil
}

// invalidateCatalogCache evicts cached listings and event details after a
// seat-count mutation, so reads never serve stale availability for the
// cache TTL.
func (s *service) invalidateCatalogCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENTS); err != nil {
		logger.GetDefault().Warn("cache invalidation failed",
			slog.String("pattern", constants.PATTERN_INVALIDATE_EVENTS),
			slog.Any("error", err),
		)
	}
}

func (s *service) GetBookingByID(ctx context.Context, bookingID string) (*Booking, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, apierror.NotFound("Booking not found with ID: " + bookingID)
		}
		return nil, err
	}
	return booking, nil
}

// GetUserBookings resolves whose history to return. A USER proves identity
// with a bearer token; an ADMIN names the user explicitly.
func (s *service) GetUserBookings(ctx context.Context, authHeader string, query *GetUserBookingsQuery) ([]UserBooking, error) {
	if query == nil {
		return nil, apierror.BadRequest("Role parameter is required")
	}

	var rawUserID string
	switch query.Role {
	case string(users.RoleUser):
		token := auth.BearerToken(authHeader)
		if token == "" || !s.tokens.Validate(token) {
			return nil, apierror.BadRequest("Either valid Authorization token or userId parameter is required")
		}
		rawUserID = s.tokens.ExtractUserID(token)
	case string(users.RoleAdmin):
		rawUserID = strings.TrimSpace(query.UserID)
	}

	if rawUserID == "" {
		return nil, apierror.BadRequest("Either valid Authorization token or userId parameter is required")
	}

	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, apierror.BadRequest("Either valid Authorization token or userId parameter is required")
	}

	return s.repo.FindWithEventsByUserID(ctx, userID)
}

func (s *service) resolveUserID(authHeader string) (uuid.UUID, error) {
	if strings.TrimSpace(authHeader) == "" {
		return uuid.Nil, apierror.Unauthorized("Authorization header is missing")
	}

	token := auth.BearerToken(authHeader)
	if !s.tokens.Validate(token) {
		return uuid.Nil, apierror.Unauthorized("Invalid or expired token")
	}

	rawID := s.tokens.ExtractUserID(token)
	userID, err := uuid.Parse(rawID)
	if rawID == "" || err != nil {
		return uuid.Nil, apierror.Unauthorized("Unable to extract user ID from token")
	}

	return userID, nil
}

func (s *service) notify(ctx context.Context, notificationType string, booking *Booking) {
	if s.notifier == nil {
		return
	}
	notification := notifications.BookingNotification{
		Type:        notificationType,
		BookingID:   booking.ID.String(),
		UserID:      booking.UserID.String(),
		EventID:     booking.EventID.String(),
		SeatsBooked: booking.SeatsBooked,
		TotalAmount: booking.TotalAmount.StringFixed(2),
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.notifier.PublishBookingNotification(ctx, notification); err != nil {
		logger.GetDefault().Warn("failed to publish booking notification",
			slog.String("booking_id", booking.ID.String()),
			slog.String("type", notificationType),
			slog.Any("error", err),
		)
	}
}

func parseBookingID(bookingID string) (uuid.UUID, error) {
	if strings.TrimSpace(bookingID) == "" {
		return uuid.Nil, apierror.BadRequest("Booking ID is required")
	}
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return uuid.Nil, apierror.NotFound("Booking not found with ID: " + bookingID)
	}
	return id, nil
}
