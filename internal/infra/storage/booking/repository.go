package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"owner_kind",
	"owner_id",
	"name",
	"description",
	"start_date",
	"end_date",
	"is_recurring",
	"recurrence_kind",
	"recurrence_weekdays",
	"recurrence_interval_weeks",
	"recurrence_day_of_month",
	"booking_type",
	"metadata",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их периодами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со всеми его периодами.
// Если в контексте передана активная транзакция (через context.Value), использует её -
// usecase создания оборачивает проверку конфликтов и вставку в сериализуемую транзакцию.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	metadata, err := encodeMetadata(b.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode metadata: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"owner_kind",
			"owner_id",
			"name",
			"description",
			"start_date",
			"end_date",
			"is_recurring",
			"recurrence_kind",
			"recurrence_weekdays",
			"recurrence_interval_weeks",
			"recurrence_day_of_month",
			"booking_type",
			"metadata",
			"is_active",
		).
		Values(
			b.Owner.Kind,
			b.Owner.ID,
			b.Name,
			b.Description,
			b.StartDate,
			b.EndDate,
			b.IsRecurring,
			string(b.Recurrence.Kind),
			encodeWeekdays(b.Recurrence.Weekdays),
			b.Recurrence.IntervalWeeks,
			b.Recurrence.DayOfMonth,
			string(b.Type),
			metadata,
			b.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	if err := r.insertPeriods(ctx, executor, b.ID, b.Periods); err != nil {
		return nil, err
	}

	return b, nil
}

// insertPeriods вставляет периоды бронирования одним запросом
func (r *Repository) insertPeriods(ctx context.Context, executor DBExecutor, bookingID int64, periods []domain.Period) error {
	if len(periods) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("booking_periods").
		Columns("booking_id", "period_date", "start_time", "end_time", "metadata")

	for _, p := range periods {
		metadata, err := encodeMetadata(p.Metadata)
		if err != nil {
			return fmt.Errorf("%w: insertPeriods - encode metadata: %v", ErrEncode, err)
		}
		insert = insert.Values(bookingID, p.Date, p.StartTime, p.EndTime, metadata)
	}

	query, args, err := insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertPeriods - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: insertPeriods - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(periods) {
			break
		}
		if err := rows.Scan(&periods[i].ID); err != nil {
			return fmt.Errorf("%w: insertPeriods - scan id: %v", ErrScanRow, err)
		}
		periods[i].BookingID = bookingID
		i++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: insertPeriods - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе с периодами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	if err := r.loadPeriods(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings[0], nil
}

// GetByOwnerWithFilter получает бронирования владельца с гибкой фильтрацией.
// Это единственная bulk-загрузка движка: бронирования и все их периоды
// вычитываются двумя запросами, независимо от количества слотов, которые
// затем будут проверяться в памяти.
//
// Фильтр по периоду отбирает бронирования, чей диапазон дат может пересекаться
// с запрошенным: start_date <= EndDate и (end_date IS NULL или end_date >= StartDate).
// Открытые диапазоны (end_date IS NULL) подходят всегда.
func (r *Repository) GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_kind": filter.Owner.Kind}).
		Where(squirrel.Eq{"owner_id": filter.Owner.ID})

	// Фильтрация по диапазону дат
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.EndDate})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": *filter.StartDate},
		})
	}

	// Фильтрация по типу
	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_type": string(*filter.Type)})
	}

	// Деактивированные бронирования исключаются из всех вычислений
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC, id ASC")

	// Внутри транзакции блокируем выборку - usecase создания делает
	// check-then-create и должен быть защищен от гонки
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadPeriods(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// Deactivate мягко отключает бронирование: оно исключается из всех
// вычислений конфликтов и доступности, но остается в истории
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование физически (периоды удаляются каскадно)
// Рекомендуется использовать Deactivate для сохранения истории
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// loadPeriods дозагружает периоды для выбранных бронирований одним IN-запросом
func (r *Repository) loadPeriods(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"period_date",
		"start_time",
		"end_time",
		"metadata",
	).
		From("booking_periods").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC, start_time ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadPeriods - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadPeriods - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var period domain.Period
		var periodDate sql.NullTime
		var rawMetadata []byte

		err := rows.Scan(
			&period.ID,
			&period.BookingID,
			&periodDate,
			&period.StartTime,
			&period.EndTime,
			&rawMetadata,
		)
		if err != nil {
			return fmt.Errorf("%w: loadPeriods - scan row: %v", ErrScanRow, err)
		}

		if periodDate.Valid {
			d := periodDate.Time
			period.Date = &d
		}

		period.Metadata, err = decodeMetadata(rawMetadata)
		if err != nil {
			return fmt.Errorf("%w: loadPeriods - decode metadata: %v", ErrScanRow, err)
		}

		if b, ok := byID[period.BookingID]; ok {
			b.Periods = append(b.Periods, period)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadPeriods - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований (без периодов)
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var endDate, createdAt, updatedAt sql.NullTime
		var recurrenceKind string
		var weekdays *string
		var rawMetadata []byte

		err := rows.Scan(
			&b.ID,
			&b.Owner.Kind,
			&b.Owner.ID,
			&b.Name,
			&b.Description,
			&b.StartDate,
			&endDate,
			&b.IsRecurring,
			&recurrenceKind,
			&weekdays,
			&b.Recurrence.IntervalWeeks,
			&b.Recurrence.DayOfMonth,
			&b.Type,
			&rawMetadata,
			&b.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if endDate.Valid {
			d := endDate.Time
			b.EndDate = &d
		}
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		b.Recurrence.Kind = domain.RecurrenceKind(recurrenceKind)
		b.Recurrence.Weekdays, err = decodeWeekdays(weekdays)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - decode weekdays: %v", ErrScanRow, err)
		}

		b.Metadata, err = decodeMetadata(rawMetadata)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - decode metadata: %v", ErrScanRow, err)
		}

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
