package events

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"eventbook/internal/shared/apierror"
	"eventbook/internal/shared/constants"
	"eventbook/pkg/cache"
	"eventbook/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetImageStore(store ImageStore)

	AddEvent(ctx context.Context, req *CreateEventRequest) (*Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req *UpdateEventRequest) (*Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetAllEvents(ctx context.Context, searchTerm string) ([]Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) (*Event, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	imageStore   ImageStore
	cacheTTL     time.Duration
}

func NewService(repo Repository, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cacheTTL: cacheTTL,
	}
}

// SetCacheService injects the catalog read cache. The service works without
// one; every lookup then hits the store.
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// SetImageStore injects the image-cleanup delegate.
func (s *service) SetImageStore(store ImageStore) {
	s.imageStore = store
}

func (s *service) AddEvent(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	event, err := eventFromRequest(req)
	if err != nil {
		return nil, err
	}
	event.ID = uuid.New()

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return event, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req *UpdateEventRequest) (*Event, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, apierror.NotFound("Event not found with ID: " + id.String())
		}
		return nil, err
	}

	updated, err := eventFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if updated.Image == "" {
		updated.Image = existing.Image
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return updated, nil
}

// eventFromRequest validates and converts the shared create/update payload.
func eventFromRequest(req *CreateEventRequest) (*Event, error) {
	if req == nil {
		return nil, apierror.BadRequest("Event data cannot be null")
	}
	if strings.TrimSpace(req.EventName) == "" {
		return nil, apierror.BadRequest("Event name cannot be empty")
	}

	eventDate, err := time.Parse(dateLayout, req.EventDate)
	if err != nil {
		return nil, apierror.BadRequest("Invalid event date, expected format " + dateLayout)
	}

	eventTime, err := parseEventTime(req.EventTime)
	if err != nil {
		return nil, apierror.BadRequest("Invalid event time, expected format HH:MM or HH:MM:SS")
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, apierror.BadRequest("Invalid price")
	}
	if price.IsNegative() {
		return nil, apierror.BadRequest("Price cannot be negative")
	}

	if req.TotalSeats <= 0 {
		return nil, apierror.BadRequest("Total seats must be greater than 0")
	}

	// The original accepts whatever availability the admin posts; it is
	// clamped into [0, total] so the seat-ledger invariant holds.
	available := req.AvailableSeats
	if available <= 0 || available > req.TotalSeats {
		available = req.TotalSeats
	}

	return &Event{
		EventName:      req.EventName,
		EventType:      req.EventType,
		Description:    req.Description,
		EventDate:      eventDate,
		EventTime:      eventTime,
		Location:       req.Location,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: available,
		Price:          price.Round(2),
		Image:          req.Image,
	}, nil
}

// parseEventTime normalizes "HH:MM" or "HH:MM:SS"; "-" separators are
// tolerated because some clients submit them.
func parseEventTime(value string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), "-", ":")
	if t, err := time.Parse(timeLayout, normalized); err == nil {
		return t.Format(timeLayout), nil
	}
	t, err := time.Parse("15:04", normalized)
	if err != nil {
		return "", err
	}
	return t.Format(timeLayout), nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	fetch := func() (*Event, error) {
		event, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrEventNotFound) {
				return nil, apierror.NotFound("Event not found with ID: " + id.String())
			}
			return nil, err
		}
		return event, nil
	}

	if s.cacheService == nil {
		return fetch()
	}

	// Detail keys fall under the events invalidation pattern, so mutations
	// clear them along with the listing. Misses (including not-found) go to
	// the store.
	var event Event
	err := s.cacheService.GetOrSet(ctx, constants.KEY_EVENT_DETAIL+id.String(), s.cacheTTL,
		func() (interface{}, error) {
			return fetch()
		}, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *service) GetAllEvents(ctx context.Context, searchTerm string) ([]Event, error) {
	term := strings.TrimSpace(searchTerm)
	if term != "" {
		return s.repo.Search(ctx, term)
	}

	if s.cacheService == nil {
		return s.repo.GetAll(ctx)
	}

	var result []Event
	err := s.cacheService.GetOrSet(ctx, constants.KEY_EVENTS_ALL, s.cacheTTL,
		func() (interface{}, error) {
			return s.repo.GetAll(ctx)
		}, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, apierror.NotFound("Event not found with ID: " + id.String())
		}
		return nil, err
	}

	// Image cleanup is best-effort: a failed delete at the image store must
	// not block removing the catalog record.
	if event.Image != "" && s.imageStore != nil {
		if err := s.imageStore.Delete(ctx, event.Image); err != nil {
			logger.GetDefault().Warn("failed to delete event image",
				slog.String("event_id", id.String()),
				slog.String("image", event.Image),
				slog.Any("error", err),
			)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return event, nil
}

func (s *service) invalidateCatalogCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	patterns := []string{
		constants.PATTERN_INVALIDATE_EVENTS,
		constants.PATTERN_INVALIDATE_STATISTICS,
	}
	for _, pattern := range patterns {
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			logger.GetDefault().Warn("cache invalidation failed",
				slog.String("pattern", pattern),
				slog.Any("error", err),
			)
		}
	}
}
