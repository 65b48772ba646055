package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingModels "github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// UseCase use case создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	configResolver ConfigResolver
	validator      Validator
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configResolver ConfigResolver,
	validator Validator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		configResolver: configResolver,
		validator:      validator,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции:
// два конкурирующих кандидата на пересекающееся время одного владельца не
// могут оба пройти валидацию и записаться.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: owner=%s/%s, name=%q, type=%s, periods=%d",
		req.OwnerKind, req.OwnerID, req.Name, req.Type, len(req.Periods))

	// 1. Грубая валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем domain кандидата
	candidate, err := req.ToDomainCandidate()
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid candidate: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Booking

	// 3. Валидация и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Действующая конфигурация владельца
		cfg, err := uc.configResolver.ResolveSchedulingConfig(txCtx, candidate.Owner)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve config: %v", err)
			return fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
		}

		// 3.2. Пайплайн валидации; чтения внутри транзакции берут FOR UPDATE
		if err := uc.validator.Validate(txCtx, candidate, cfg); err != nil {
			return err
		}

		// 3.3. Сохраняем бронирование вместе с периодами
		created, err := uc.bookingRepo.Create(txCtx, candidate.ToBooking())
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for owner=%s/%s",
		result.ID, req.OwnerKind, req.OwnerID)

	return bookingModels.FromDomainBooking(result), nil
}
