package bookings

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eventbook/internal/auth"
	"eventbook/internal/events"
	"eventbook/internal/shared/apierror"
	"eventbook/internal/shared/config"
	"eventbook/internal/shared/constants"
	"eventbook/pkg/cache"
)

// fakeRepository mirrors the store contract in memory: every mutating call
// holds one lock, matching the serialization the row-locked transaction
// gives the real repository.
type fakeRepository struct {
	mu       sync.Mutex
	users    map[uuid.UUID]bool
	events   map[uuid.UUID]*events.Event
	bookings map[uuid.UUID]*Booking
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:    make(map[uuid.UUID]bool),
		events:   make(map[uuid.UUID]*events.Event),
		bookings: make(map[uuid.UUID]*Booking),
	}
}

func (f *fakeRepository) addUser(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id] = true
}

func (f *fakeRepository) addEvent(event *events.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[event.ID] = event
}

func (f *fakeRepository) availableSeats(eventID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[eventID].AvailableSeats
}

func (f *fakeRepository) setEventPrice(eventID uuid.UUID, price string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, _ := decimal.NewFromString(price)
	f.events[eventID].Price = p
}

func (f *fakeRepository) CreateWithSeatCheck(_ context.Context, booking *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.users[booking.UserID] {
		return apierror.NotFound("User not found with ID: " + booking.UserID.String())
	}

	event, ok := f.events[booking.EventID]
	if !ok {
		return apierror.NotFound("Event not found with ID: " + booking.EventID.String())
	}

	for _, existing := range f.bookings {
		if existing.UserID == booking.UserID && existing.EventID == booking.EventID && existing.Status.IsActive() {
			return apierror.Conflict("User has already booked this event")
		}
	}

	if !event.HasAvailability(booking.SeatsBooked) {
		return apierror.Conflict(fmt.Sprintf(
			"Insufficient seats available. Requested: %d, Available: %d",
			booking.SeatsBooked, event.AvailableSeats))
	}

	booking.TotalAmount = event.Price.Mul(decimal.NewFromInt(int64(booking.SeatsBooked))).Round(2)
	booking.Status = StatusBooked
	if booking.BookingDate.IsZero() {
		booking.BookingDate = time.Now()
	}

	event.AvailableSeats -= booking.SeatsBooked
	stored := *booking
	f.bookings[booking.ID] = &stored
	return nil
}

func (f *fakeRepository) CancelWithSeatRestore(_ context.Context, bookingID uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, apierror.NotFound("Booking not found with ID: " + bookingID.String())
	}
	if !booking.Status.CanBeCancelled() {
		return nil, apierror.Conflict("Booking is already cancelled")
	}

	if event, ok := f.events[booking.EventID]; ok {
		event.AvailableSeats += booking.SeatsBooked
	}
	booking.Status = StatusCancelled

	result := *booking
	return &result, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	result := *booking
	return &result, nil
}

func (f *fakeRepository) FindWithEventsByUserID(_ context.Context, userID uuid.UUID) ([]UserBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []UserBooking
	for _, booking := range f.bookings {
		if booking.UserID != userID {
			continue
		}
		entry := UserBooking{Booking: *booking}
		if event, ok := f.events[booking.EventID]; ok {
			copied := *event
			entry.Event = &copied
		}
		result = append(result, entry)
	}
	return result, nil
}

func newTestTokens() *auth.TokenService {
	return auth.NewTokenService(config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
	})
}

func newTestEvent(price string, total int) *events.Event {
	p, _ := decimal.NewFromString(price)
	return &events.Event{
		ID:             uuid.New(),
		EventName:      "Indie Rock Night",
		EventType:      "Concert",
		EventDate:      time.Now().AddDate(0, 0, 7),
		EventTime:      "19:30:00",
		Location:       "Mumbai",
		TotalSeats:     total,
		AvailableSeats: total,
		Price:          p,
	}
}

func setupBookingTest(t *testing.T) (*fakeRepository, Service, uuid.UUID, *events.Event, string) {
	t.Helper()

	repo := newFakeRepository()
	tokens := newTestTokens()
	svc := NewService(repo, tokens)

	userID := uuid.New()
	repo.addUser(userID)

	event := newTestEvent("25.00", 10)
	repo.addEvent(event)

	token, err := tokens.Issue(userID.String(), "9000000002", "USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	return repo, svc, userID, event, "Bearer " + token
}

// fakeCache records the invalidation patterns the service issues; reads
// always miss so fetchers run against the store.
type fakeCache struct {
	mu       sync.Mutex
	patterns []string
}

func (f *fakeCache) Get(_ context.Context, _ string, _ interface{}) error { return cache.ErrCacheMiss }

func (f *fakeCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (f *fakeCache) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patterns = append(f.patterns, pattern)
	return nil
}

func (f *fakeCache) Exists(_ context.Context, _ string) bool { return false }

func (f *fakeCache) GetOrSet(_ context.Context, _ string, _ time.Duration, fetcher func() (interface{}, error), _ interface{}) error {
	_, err := fetcher()
	return err
}

func (f *fakeCache) Ping(_ context.Context) error { return nil }

func (f *fakeCache) invalidated() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.patterns...)
}

func requireApiError(t *testing.T, err error, wantStatus int, wantMessage string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %d %q, got nil", wantStatus, wantMessage)
	}
	apiErr := apierror.From(err)
	if apiErr.StatusCode != wantStatus {
		t.Fatalf("status = %d, want %d (err: %v)", apiErr.StatusCode, wantStatus, err)
	}
	if wantMessage != "" && !strings.Contains(apiErr.Message, wantMessage) {
		t.Fatalf("message = %q, want it to contain %q", apiErr.Message, wantMessage)
	}
}

func TestBookEventSuccess(t *testing.T) {
	repo, svc, userID, event, header := setupBookingTest(t)

	booking, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 3,
	})
	if err != nil {
		t.Fatalf("BookEvent() error = %v", err)
	}

	if booking.UserID != userID {
		t.Errorf("UserID = %s, want %s", booking.UserID, userID)
	}
	if booking.Status != StatusBooked {
		t.Errorf("Status = %s, want %s", booking.Status, StatusBooked)
	}
	if got, want := booking.TotalAmount.StringFixed(2), "75.00"; got != want {
		t.Errorf("TotalAmount = %s, want %s", got, want)
	}
	if !strings.HasPrefix(booking.PaymentID, "PAY_") {
		t.Errorf("PaymentID = %q, want PAY_ prefix", booking.PaymentID)
	}
	if got := repo.availableSeats(event.ID); got != 7 {
		t.Errorf("available seats after booking = %d, want 7", got)
	}
}

func TestBookEventKeepsProvidedPaymentID(t *testing.T) {
	_, svc, _, event, header := setupBookingTest(t)

	booking, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 1,
		PaymentID:   "PAY_custom",
	})
	if err != nil {
		t.Fatalf("BookEvent() error = %v", err)
	}
	if booking.PaymentID != "PAY_custom" {
		t.Errorf("PaymentID = %q, want PAY_custom", booking.PaymentID)
	}
}

func TestBookEventAuthLadder(t *testing.T) {
	_, svc, _, event, _ := setupBookingTest(t)
	req := &BookEventRequest{EventID: event.ID.String(), SeatsBooked: 1}

	_, err := svc.BookEvent(context.Background(), "", req)
	requireApiError(t, err, 401, "Authorization header is missing")

	_, err = svc.BookEvent(context.Background(), "Bearer not-a-token", req)
	requireApiError(t, err, 401, "Invalid or expired token")
}

func TestBookEventRejectsForgedToken(t *testing.T) {
	_, svc, userID, event, _ := setupBookingTest(t)

	otherTokens := auth.NewTokenService(config.JWTConfig{
		Secret:    "another-secret",
		ExpiresIn: time.Hour,
	})
	forged, err := otherTokens.Issue(userID.String(), "9000000002", "USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = svc.BookEvent(context.Background(), "Bearer "+forged, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 1,
	})
	requireApiError(t, err, 401, "Invalid or expired token")
}

func TestBookEventValidation(t *testing.T) {
	_, svc, _, event, header := setupBookingTest(t)

	_, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     "",
		SeatsBooked: 1,
	})
	requireApiError(t, err, 400, "Event ID is required")

	_, err = svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 0,
	})
	requireApiError(t, err, 400, "Number of seats must be greater than 0")

	// A supplied but malformed id is treated like any other unknown event.
	_, err = svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     "not-a-uuid",
		SeatsBooked: 1,
	})
	requireApiError(t, err, 404, "Event not found with ID: not-a-uuid")
}

func TestBookingAmountFixedAtBookingTime(t *testing.T) {
	repo, svc, _, event, header := setupBookingTest(t)

	booking, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 3,
	})
	if err != nil {
		t.Fatalf("BookEvent() error = %v", err)
	}
	if got, want := booking.TotalAmount.StringFixed(2), "75.00"; got != want {
		t.Fatalf("TotalAmount = %s, want %s", got, want)
	}

	// Repricing the event must not touch amounts already charged.
	repo.setEventPrice(event.ID, "99.00")

	stored, err := svc.GetBookingByID(context.Background(), booking.ID.String())
	if err != nil {
		t.Fatalf("GetBookingByID() error = %v", err)
	}
	if got, want := stored.TotalAmount.StringFixed(2), "75.00"; got != want {
		t.Errorf("TotalAmount after price change = %s, want %s", got, want)
	}
}

func TestBookingLifecycleInvalidatesEventCache(t *testing.T) {
	_, svc, _, event, header := setupBookingTest(t)

	cacheFake := &fakeCache{}
	svc.SetCacheService(cacheFake)

	booking, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 2,
	})
	if err != nil {
		t.Fatalf("BookEvent() error = %v", err)
	}
	if got := cacheFake.invalidated(); len(got) != 1 || got[0] != constants.PATTERN_INVALIDATE_EVENTS {
		t.Fatalf("patterns after booking = %v, want [%s]", got, constants.PATTERN_INVALIDATE_EVENTS)
	}

	if _, err := svc.CancelBooking(context.Background(), booking.ID.String()); err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}
	if got := cacheFake.invalidated(); len(got) != 2 || got[1] != constants.PATTERN_INVALIDATE_EVENTS {
		t.Fatalf("patterns after cancellation = %v, want two %s entries", got, constants.PATTERN_INVALIDATE_EVENTS)
	}
}

func TestFailedBookingLeavesCacheAlone(t *testing.T) {
	_, svc, _, event, header := setupBookingTest(t)

	cacheFake := &fakeCache{}
	svc.SetCacheService(cacheFake)

	_, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 999,
	})
	requireApiError(t, err, 409, "Insufficient seats available")

	if got := cacheFake.invalidated(); len(got) != 0 {
		t.Errorf("patterns after rejected booking = %v, want none", got)
	}
}

func TestBookEventUnknownUser(t *testing.T) {
	_, svc, _, event, _ := setupBookingTest(t)

	// Signed with the shared test secret but for a user the store has never
	// seen.
	ghostToken, err := newTestTokens().Issue(uuid.NewString(), "9000000099", "USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = svc.BookEvent(context.Background(), "Bearer "+ghostToken, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 1,
	})
	requireApiError(t, err, 404, "User not found")
}

func TestBookEventMissingEvent(t *testing.T) {
	_, svc, _, _, header := setupBookingTest(t)

	_, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     uuid.NewString(),
		SeatsBooked: 1,
	})
	requireApiError(t, err, 404, "Event not found")
}

func TestBookEventDuplicateActiveBooking(t *testing.T) {
	_, svc, _, event, header := setupBookingTest(t)
	req := &BookEventRequest{EventID: event.ID.String(), SeatsBooked: 1}

	if _, err := svc.BookEvent(context.Background(), header, req); err != nil {
		t.Fatalf("first BookEvent() error = %v", err)
	}

	_, err := svc.BookEvent(context.Background(), header, req)
	requireApiError(t, err, 409, "User has already booked this event")
}

func TestBookEventAfterCancellationAllowed(t *testing.T) {
	_, svc, _, event, header := setupBookingTest(t)
	req := &BookEventRequest{EventID: event.ID.String(), SeatsBooked: 2}

	first, err := svc.BookEvent(context.Background(), header, req)
	if err != nil {
		t.Fatalf("BookEvent() error = %v", err)
	}
	if _, err := svc.CancelBooking(context.Background(), first.ID.String()); err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}

	if _, err := svc.BookEvent(context.Background(), header, req); err != nil {
		t.Fatalf("rebooking after cancellation error = %v", err)
	}
}

func TestBookEventInsufficientSeats(t *testing.T) {
	repo, svc, _, event, header := setupBookingTest(t)

	_, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 11,
	})
	requireApiError(t, err, 409, "Insufficient seats available. Requested: 11, Available: 10")

	// A rejected booking must not touch availability.
	if got := repo.availableSeats(event.ID); got != 10 {
		t.Errorf("available seats after rejection = %d, want 10", got)
	}
}

func TestCancelBooking(t *testing.T) {
	repo, svc, _, event, header := setupBookingTest(t)

	booking, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 4,
	})
	if err != nil {
		t.Fatalf("BookEvent() error = %v", err)
	}

	cancelled, err := svc.CancelBooking(context.Background(), booking.ID.String())
	if err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("Status = %s, want %s", cancelled.Status, StatusCancelled)
	}
	if got := repo.availableSeats(event.ID); got != 10 {
		t.Errorf("available seats after cancel = %d, want 10", got)
	}

	// Second cancellation must not restore seats again.
	_, err = svc.CancelBooking(context.Background(), booking.ID.String())
	requireApiError(t, err, 409, "Booking is already cancelled")
	if got := repo.availableSeats(event.ID); got != 10 {
		t.Errorf("available seats after double cancel = %d, want 10", got)
	}
}

func TestCancelBookingValidation(t *testing.T) {
	_, svc, _, _, _ := setupBookingTest(t)

	_, err := svc.CancelBooking(context.Background(), "")
	requireApiError(t, err, 400, "Booking ID is required")

	_, err = svc.CancelBooking(context.Background(), uuid.NewString())
	requireApiError(t, err, 404, "Booking not found")
}

func TestGetBookingByID(t *testing.T) {
	_, svc, _, event, header := setupBookingTest(t)

	booking, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 1,
	})
	if err != nil {
		t.Fatalf("BookEvent() error = %v", err)
	}

	fetched, err := svc.GetBookingByID(context.Background(), booking.ID.String())
	if err != nil {
		t.Fatalf("GetBookingByID() error = %v", err)
	}
	if fetched.ID != booking.ID {
		t.Errorf("ID = %s, want %s", fetched.ID, booking.ID)
	}

	_, err = svc.GetBookingByID(context.Background(), "")
	requireApiError(t, err, 400, "Booking ID is required")

	_, err = svc.GetBookingByID(context.Background(), uuid.NewString())
	requireApiError(t, err, 404, "Booking not found")
}

func TestGetUserBookingsRoleResolution(t *testing.T) {
	_, svc, userID, event, header := setupBookingTest(t)

	if _, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
		EventID:     event.ID.String(),
		SeatsBooked: 2,
	}); err != nil {
		t.Fatalf("BookEvent() error = %v", err)
	}

	// USER branch: identity comes from the token.
	list, err := svc.GetUserBookings(context.Background(), header, &GetUserBookingsQuery{Role: "USER"})
	if err != nil {
		t.Fatalf("GetUserBookings(USER) error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if list[0].Event == nil || list[0].Event.ID != event.ID {
		t.Errorf("expected event %s attached to booking", event.ID)
	}

	// ADMIN branch: identity comes from the userId parameter, no token needed.
	list, err = svc.GetUserBookings(context.Background(), "", &GetUserBookingsQuery{
		Role:   "ADMIN",
		UserID: userID.String(),
	})
	if err != nil {
		t.Fatalf("GetUserBookings(ADMIN) error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}

	// Neither a token nor a userId: nothing to resolve.
	_, err = svc.GetUserBookings(context.Background(), "", &GetUserBookingsQuery{Role: "USER"})
	requireApiError(t, err, 400, "Either valid Authorization token or userId parameter is required")

	_, err = svc.GetUserBookings(context.Background(), "", &GetUserBookingsQuery{Role: "ADMIN"})
	requireApiError(t, err, 400, "Either valid Authorization token or userId parameter is required")
}

// TestBookEventConcurrentOversubscription drives many concurrent bookings at
// a small event: exactly availableSeats single-seat bookings may succeed, the
// rest fail with a conflict, and availability never goes negative.
func TestBookEventConcurrentOversubscription(t *testing.T) {
	repo := newFakeRepository()
	tokens := newTestTokens()
	svc := NewService(repo, tokens)

	const seats = 5
	const attempts = 40

	event := newTestEvent("10.00", seats)
	repo.addEvent(event)

	headers := make([]string, attempts)
	for i := 0; i < attempts; i++ {
		userID := uuid.New()
		repo.addUser(userID)
		token, err := tokens.Issue(userID.String(), fmt.Sprintf("90000%05d", i), "USER")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		headers[i] = "Bearer " + token
	}

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(header string) {
			defer wg.Done()
			_, err := svc.BookEvent(context.Background(), header, &BookEventRequest{
				EventID:     event.ID.String(),
				SeatsBooked: 1,
			})
			results <- err
		}(headers[i])
	}
	wg.Wait()
	close(results)

	var succeeded, conflicts int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case apierror.From(err).StatusCode == 409:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != seats {
		t.Errorf("succeeded = %d, want %d", succeeded, seats)
	}
	if conflicts != attempts-seats {
		t.Errorf("conflicts = %d, want %d", conflicts, attempts-seats)
	}
	if got := repo.availableSeats(event.ID); got != 0 {
		t.Errorf("available seats = %d, want 0", got)
	}
}
