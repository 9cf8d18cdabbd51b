package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"homehero/internal/events"
	"homehero/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBookingService_CreateBooking(t *testing.T) {
	repo := new(mockBookingRepo)
	bus := new(mockEventBus)
	svc := NewBookingService(repo, bus, nil)
	fixed := time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	repo.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.ServiceID == "svc-1" && b.Price == 250 && b.Status == models.StatusPending && b.CreatedAt.Equal(fixed)
	})).Return(&models.InsertResult{Acknowledged: true, InsertedID: "b1"}, nil)
	bus.On("PublishJSON", events.EventBookingCreated, mock.Anything).Return(nil)

	res, err := svc.CreateBooking(context.Background(), models.NewBookingRequest{
		ServiceID: "svc-1", BookingDate: "2025-12-24", Price: 250, UserEmail: "u@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "b1", res.InsertedID)
	repo.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestBookingService_CreateBookingMissingFields(t *testing.T) {
	repo := new(mockBookingRepo)
	svc := NewBookingService(repo, nil, nil)

	_, err := svc.CreateBooking(context.Background(), models.NewBookingRequest{ServiceID: "svc-1"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"bookingDate", "price", "userEmail"}, verr.Fields)
	repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestBookingService_ListBookings(t *testing.T) {
	repo := new(mockBookingRepo)
	svc := NewBookingService(repo, nil, nil)
	ctx := context.Background()

	repo.On("ListBookings", ctx).Return([]*models.Booking{{ServiceID: "a"}, {ServiceID: "b"}}, nil)
	repo.On("ListBookingsByUser", ctx, "u@example.com").Return([]*models.Booking{{ServiceID: "a"}}, nil)

	all, err := svc.ListBookings(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListBookings(ctx, "  u@example.com ")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestBookingService_UpdateBooking(t *testing.T) {
	repo := new(mockBookingRepo)
	bus := new(mockEventBus)
	svc := NewBookingService(repo, bus, nil)
	fixed := time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	status := models.StatusConfirmed
	repo.On("UpdateBooking", mock.Anything, "b1", map[string]any{
		"status":     models.StatusConfirmed,
		"updated_at": fixed,
	}).Return(&models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil)
	bus.On("PublishJSON", events.EventBookingUpdated, mock.Anything).Return(nil)

	_, err := svc.UpdateBooking(context.Background(), "b1", models.BookingPatch{Status: &status})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestBookingService_DeleteBooking(t *testing.T) {
	repo := new(mockBookingRepo)
	bus := new(mockEventBus)
	svc := NewBookingService(repo, bus, nil)

	repo.On("DeleteBooking", mock.Anything, "b1").Return(nil)
	bus.On("PublishJSON", events.EventBookingDeleted, mock.Anything).Return(nil)

	require.NoError(t, svc.DeleteBooking(context.Background(), "b1"))
	bus.AssertExpectations(t)
}

func TestBookingService_ExportBookings(t *testing.T) {
	repo := new(mockBookingRepo)
	svc := NewBookingService(repo, nil, nil)

	repo.On("ListBookings", mock.Anything).Return([]*models.Booking{
		{ID: primitive.NewObjectID(), ServiceID: "svc-1", UserEmail: "u@example.com", CreatedAt: time.Now()},
	}, nil)

	data, err := svc.ExportBookings(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestBookingService_ExportBookingsStorageError(t *testing.T) {
	repo := new(mockBookingRepo)
	svc := NewBookingService(repo, nil, nil)

	repo.On("ListBookings", mock.Anything).Return(nil, errors.New("down"))

	_, err := svc.ExportBookings(context.Background())
	assert.Error(t, err)
}
