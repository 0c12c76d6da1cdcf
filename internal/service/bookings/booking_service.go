package bookings

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/rente/internal/authz"
	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/kafka"
	"github.com/Domenick1991/rente/internal/repository"
)

const cancellationDeniedMsg = "cancellation allowed only up to 2 days before check-in"

type BookingUseCase interface {
	Create(ctx context.Context, actor *domain.User, input CreateBookingInput) (*domain.Booking, error)
	Confirm(ctx context.Context, actor *domain.User, bookingID int64) (*domain.Booking, error)
	Cancel(ctx context.Context, actor *domain.User, bookingID int64) (*domain.Booking, error)
	List(ctx context.Context, actor *domain.User) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	ListingID int64     `json:"listing_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type BookingService struct {
	bookings           repository.BookingRepository
	listings           repository.ListingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	cancelWindow       int
	logger             *zap.Logger
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the time source, used by the deadline tests.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	listings repository.ListingRepository,
	producer Producer,
	bookingTopic string,
	cancelWindowDays int,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		listings:     listings,
		producer:     producer,
		bookingTopic: bookingTopic,
		cancelWindow: cancelWindowDays,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create always enters pending. The tenant is the acting user; any tenant
// field in the payload is ignored.
func (s *BookingService) Create(ctx context.Context, actor *domain.User, input CreateBookingInput) (*domain.Booking, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if input.ListingID == 0 {
		return nil, domain.NewValidationError("listing_id", "listing is required")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, domain.NewValidationError("start_date", "start and end dates are required")
	}

	listing, err := s.listings.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ListingID:      listing.ID,
		TenantID:       actor.ID,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Status:         domain.BookingStatusPending,
		ListingOwnerID: listing.OwnerID,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

// Confirm is owner-only. It deliberately has no precondition on the current
// status: re-confirming, or confirming a canceled booking, succeeds.
func (s *BookingService) Confirm(ctx context.Context, actor *domain.User, bookingID int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanConfirmBooking(actor, current); err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_confirmed", updated)
	return updated, nil
}

// Cancel applies the deadline rule on civil dates: the cutoff is
// start_date minus the window, and a cancellation on the cutoff day itself
// still succeeds. Denied cancellations leave the status untouched.
func (s *BookingService) Cancel(ctx context.Context, actor *domain.User, bookingID int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanCancelBooking(actor, current); err != nil {
		return nil, err
	}

	today := civilDate(s.now().UTC())
	cutoff := civilDate(current.StartDate).AddDate(0, 0, -s.cancelWindow)
	if today.After(cutoff) {
		return nil, domain.AccessDenied(cancellationDeniedMsg)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusCanceled)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_canceled", updated)
	return updated, nil
}

// List returns the requester's scope: bookings they made plus bookings on
// their listings.
func (s *BookingService) List(ctx context.Context, actor *domain.User) ([]domain.Booking, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.bookings.ListForUser(ctx, actor.ID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		ListingID: booking.ListingID,
		TenantID:  booking.TenantID,
		Status:    string(booking.Status),
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
	}
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.logger.Warn("publish booking event", zap.String("type", eventType), zap.Error(err))
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.logger.Warn("publish booking notification", zap.String("type", eventType), zap.Error(err))
		}
	}
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var _ BookingUseCase = (*BookingService)(nil)
