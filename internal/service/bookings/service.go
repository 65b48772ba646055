package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetOwnerBookings получает бронирования владельца с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, типу и включению деактивированных
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOwnerBookings: fetching bookings for owner=%s/%s", req.OwnerKind, req.OwnerID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetOwnerBookings: invalid filter for owner=%s/%s: %v", req.OwnerKind, req.OwnerID, err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%s/%s: %v", req.OwnerKind, req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: successfully fetched %d bookings for owner=%s/%s",
		len(bookings), req.OwnerKind, req.OwnerID)
	return models.FromDomainBookingList(bookings), nil
}

// Deactivate мягко отключает бронирование: оно исчезает из всех расчетов
// конфликтов и доступности, но остается в хранилище
func (s *Service) Deactivate(ctx context.Context, id int64, userID string) error {
	s.logger.Info("Deactivate: deactivating booking id=%d by user=%s", id, userID)

	booking, err := s.loadForWrite(ctx, id, userID, "Deactivate")
	if err != nil {
		return err
	}

	if !booking.IsActive {
		s.logger.Info("Deactivate: booking id=%d is already inactive", id)
		return nil
	}

	if err := s.bookingRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Deactivate: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated booking id=%d", id)
	return nil
}

// Delete физически удаляет бронирование вместе с периодами
func (s *Service) Delete(ctx context.Context, id int64, userID string) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%s", id, userID)

	if _, err := s.loadForWrite(ctx, id, userID, "Delete"); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// loadForWrite загружает бронирование и проверяет права на изменение.
// Разрешение владения за пределами пользовательских календарей - забота
// вызывающей стороны, движок проверяет только владельцев вида user.
func (s *Service) loadForWrite(ctx context.Context, id int64, userID string, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.Owner.Kind == "user" && booking.Owner.ID != userID {
		s.logger.Warn("%s: access denied for user=%s to booking id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
