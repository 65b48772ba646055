package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

var (
	// ErrInvalidBookingType возвращается при некорректном типе бронирования
	ErrInvalidBookingType = errors.New("invalid booking type")

	// ErrInvalidRecurrenceKind возвращается при некорректном виде повторения
	ErrInvalidRecurrenceKind = errors.New("invalid recurrence kind")

	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// Request модели

// GetOwnerBookingsRequest запрос на получение бронирований владельца
type GetOwnerBookingsRequest struct {
	OwnerKind       string     `json:"ownerKind"`
	OwnerID         string     `json:"ownerId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Type            *string    `json:"type,omitempty"`            // Фильтр по типу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить деактивированные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetOwnerBookingsRequest) ToDomainFilter() (domain.OwnerBookingsFilter, error) {
	filter := domain.OwnerBookingsFilter{
		Owner:           domain.OwnerRef{Kind: r.OwnerKind, ID: r.OwnerID},
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Type != nil {
		bookingType, err := ToDomainBookingType(*r.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = &bookingType
	}

	return filter, nil
}

// Response модели

// RecurrenceResponse описание шаблона повторения
type RecurrenceResponse struct {
	Kind          string   `json:"kind"`
	Weekdays      []string `json:"weekdays,omitempty"`
	IntervalWeeks int      `json:"intervalWeeks,omitempty"`
	DayOfMonth    int      `json:"dayOfMonth,omitempty"`
}

// PeriodResponse один временной интервал бронирования
type PeriodResponse struct {
	ID        int64             `json:"id"`
	Date      *string           `json:"date,omitempty"` // "2025-10-15"
	StartTime string            `json:"startTime"`      // "10:00"
	EndTime   string            `json:"endTime"`        // "11:00"
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64               `json:"id"`
	OwnerKind   string              `json:"ownerKind"`
	OwnerID     string              `json:"ownerId"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	StartDate   string              `json:"startDate"`         // "2025-10-15"
	EndDate     *string             `json:"endDate,omitempty"` // nil = бессрочно
	IsRecurring bool                `json:"isRecurring"`
	Recurrence  *RecurrenceResponse `json:"recurrence,omitempty"`
	Type        string              `json:"type"`
	Metadata    map[string]string   `json:"metadata,omitempty"`
	IsActive    bool                `json:"isActive"`
	Periods     []PeriodResponse    `json:"periods"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		OwnerKind:   b.Owner.Kind,
		OwnerID:     b.Owner.ID,
		Name:        b.Name,
		Description: b.Description,
		StartDate:   b.StartDate.Format(domain.DateFormat),
		IsRecurring: b.IsRecurring,
		Type:        string(b.Type),
		Metadata:    b.Metadata,
		IsActive:    b.IsActive,
		Periods:     make([]PeriodResponse, len(b.Periods)),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if b.EndDate != nil {
		endDate := b.EndDate.Format(domain.DateFormat)
		resp.EndDate = &endDate
	}

	if b.IsRecurring {
		resp.Recurrence = fromDomainRecurrence(b.Recurrence)
	}

	for i, p := range b.Periods {
		resp.Periods[i] = fromDomainPeriod(p)
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

func fromDomainPeriod(p domain.Period) PeriodResponse {
	resp := PeriodResponse{
		ID:        p.ID,
		StartTime: p.StartTime.String(),
		EndTime:   p.EndTime.String(),
		Metadata:  p.Metadata,
	}

	if p.Date != nil {
		date := p.Date.Format(domain.DateFormat)
		resp.Date = &date
	}

	return resp
}

func fromDomainRecurrence(p domain.RecurrencePattern) *RecurrenceResponse {
	resp := &RecurrenceResponse{
		Kind:          string(p.Kind),
		IntervalWeeks: p.IntervalWeeks,
		DayOfMonth:    p.DayOfMonth,
	}

	for _, d := range p.Weekdays {
		resp.Weekdays = append(resp.Weekdays, FromDomainWeekday(d))
	}

	return resp
}

// ToDomainBookingType конвертирует строку в domain.BookingType с валидацией
func ToDomainBookingType(bookingType string) (domain.BookingType, error) {
	t := domain.BookingType(bookingType)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBookingType, bookingType)
	}
	return t, nil
}

// ToDomainRecurrenceKind конвертирует строку в domain.RecurrenceKind с валидацией
func ToDomainRecurrenceKind(kind string) (domain.RecurrenceKind, error) {
	k := domain.RecurrenceKind(kind)
	switch k {
	case domain.RecurrenceNone, domain.RecurrenceDaily, domain.RecurrenceWeekly, domain.RecurrenceMonthly:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRecurrenceKind, kind)
	}
}

// ToDomainWeekday конвертирует имя дня недели в time.Weekday
func ToDomainWeekday(name string) (time.Weekday, error) {
	switch name {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
	}
}

// FromDomainWeekday возвращает имя дня недели в нижнем регистре
func FromDomainWeekday(day time.Weekday) string {
	switch day {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return ""
	}
}
