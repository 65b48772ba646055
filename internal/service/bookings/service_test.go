package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type stubRepo struct {
	booking         *domain.Booking
	bookings        []*domain.Booking
	getErr          error
	deactivateCalls int
	deleteCalls     int
	lastFilter      domain.OwnerBookingsFilter
}

func (s *stubRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.booking == nil || s.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return s.booking, nil
}

func (s *stubRepo) GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	s.lastFilter = filter
	return s.bookings, nil
}

func (s *stubRepo) Deactivate(ctx context.Context, id int64) error {
	s.deactivateCalls++
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	s.deleteCalls++
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		Owner:     domain.OwnerRef{Kind: "user", ID: "42"},
		Name:      "meeting",
		StartDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Type:      domain.TypeAppointment,
		IsActive:  true,
		Periods: []domain.Period{
			{StartTime: types.TimeString("10:00"), EndTime: types.TimeString("11:00")},
		},
	}
}

func TestGetByID(t *testing.T) {
	repo := &stubRepo{booking: testBooking(7)}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "meeting", resp.Name)
	assert.Equal(t, "appointment", resp.Type)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 99)

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByIDInternalError(t *testing.T) {
	repo := &stubRepo{getErr: errors.New("connection refused")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 7)

	require.ErrorIs(t, err, ErrInternal)
}

func TestGetOwnerBookings(t *testing.T) {
	repo := &stubRepo{bookings: []*domain.Booking{testBooking(1), testBooking(2)}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetOwnerBookings(context.Background(), &models.GetOwnerBookingsRequest{
		OwnerKind: "user",
		OwnerID:   "42",
		Type:      ptr.Ptr("appointment"),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	require.NotNil(t, repo.lastFilter.Type)
	assert.Equal(t, domain.TypeAppointment, *repo.lastFilter.Type)
}

func TestGetOwnerBookingsInvalidType(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	_, err := svc.GetOwnerBookings(context.Background(), &models.GetOwnerBookingsRequest{
		OwnerKind: "user",
		OwnerID:   "42",
		Type:      ptr.Ptr("vacation"),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeactivate(t *testing.T) {
	repo := &stubRepo{booking: testBooking(7)}
	svc := NewService(repo, nopLogger{})

	err := svc.Deactivate(context.Background(), 7, "42")

	require.NoError(t, err)
	assert.Equal(t, 1, repo.deactivateCalls)
}

func TestDeactivateAlreadyInactive(t *testing.T) {
	b := testBooking(7)
	b.IsActive = false
	repo := &stubRepo{booking: b}
	svc := NewService(repo, nopLogger{})

	err := svc.Deactivate(context.Background(), 7, "42")

	require.NoError(t, err)
	assert.Equal(t, 0, repo.deactivateCalls)
}

func TestDeactivateAccessDenied(t *testing.T) {
	repo := &stubRepo{booking: testBooking(7)}
	svc := NewService(repo, nopLogger{})

	err := svc.Deactivate(context.Background(), 7, "99")

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, repo.deactivateCalls)
}

func TestDeactivateNonUserOwnerAllowed(t *testing.T) {
	b := testBooking(7)
	b.Owner = domain.OwnerRef{Kind: "resource", ID: "room-1"}
	repo := &stubRepo{booking: b}
	svc := NewService(repo, nopLogger{})

	err := svc.Deactivate(context.Background(), 7, "99")

	require.NoError(t, err)
	assert.Equal(t, 1, repo.deactivateCalls)
}

func TestDelete(t *testing.T) {
	repo := &stubRepo{booking: testBooking(7)}
	svc := NewService(repo, nopLogger{})

	err := svc.Delete(context.Background(), 7, "42")

	require.NoError(t, err)
	assert.Equal(t, 1, repo.deleteCalls)
}

func TestDeleteNotFound(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	err := svc.Delete(context.Background(), 99, "42")

	require.ErrorIs(t, err, ErrBookingNotFound)
}
