package service

import (
	"context"
	"strings"
	"time"

	"homehero/internal/database"
	"homehero/internal/domain"
	"homehero/internal/events"
	"homehero/internal/export"
	"homehero/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.BookingRepository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingService(repo domain.BookingRepository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   nopIfNil(logger),
		now:      time.Now,
	}
}

// CreateBooking stores a booking. serviceId and userEmail are not checked against other collections.
func (s *BookingService) CreateBooking(ctx context.Context, req models.NewBookingRequest) (*models.InsertResult, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	booking := req.Booking(s.now())
	res, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	publishEvent(s.eventBus, s.logger, events.EventBookingCreated, events.DocumentEventPayload{
		Collection: database.BookingsCollection,
		ID:         res.InsertedID,
		Email:      booking.UserEmail,
	})
	return res, nil
}

// ListBookings returns every booking, or only those of userEmail when it is set.
func (s *BookingService) ListBookings(ctx context.Context, userEmail string) ([]*models.Booking, error) {
	if email := strings.TrimSpace(userEmail); email != "" {
		return s.repo.ListBookingsByUser(ctx, email)
	}
	return s.repo.ListBookings(ctx)
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) UpdateBooking(ctx context.Context, id string, patch models.BookingPatch) (*models.UpdateResult, error) {
	fields := patch.Fields()
	fields[models.FieldUpdatedAt] = s.now()

	res, err := s.repo.UpdateBooking(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	publishEvent(s.eventBus, s.logger, events.EventBookingUpdated, events.DocumentEventPayload{
		Collection: database.BookingsCollection,
		ID:         id,
		Fields:     fieldNames(fields),
	})
	return res, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}

	publishEvent(s.eventBus, s.logger, events.EventBookingDeleted, events.DocumentEventPayload{
		Collection: database.BookingsCollection,
		ID:         id,
	})
	return nil
}

// ExportBookings renders all bookings as an xlsx workbook.
func (s *BookingService) ExportBookings(ctx context.Context) ([]byte, error) {
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	return export.BookingsWorkbook(bookings)
}
