package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OwnerKind   string  `json:"ownerKind"`
	OwnerID     string  `json:"ownerId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	StartDate   string  `json:"startDate"`         // "2025-10-15"
	EndDate     *string `json:"endDate,omitempty"` // для повторяющихся

	IsRecurring bool               `json:"isRecurring,omitempty"`
	Recurrence  *RecurrenceRequest `json:"recurrence,omitempty"`

	Type     string            `json:"type"`
	Metadata map[string]string `json:"metadata,omitempty"`

	Periods []PeriodRequest `json:"periods"`

	Rules *RulesRequest `json:"rules,omitempty"`
}

// RecurrenceRequest шаблон повторения
type RecurrenceRequest struct {
	Kind          string   `json:"kind"` // daily | weekly | monthly
	Weekdays      []string `json:"weekdays,omitempty"`
	IntervalWeeks int      `json:"intervalWeeks,omitempty"`
	DayOfMonth    int      `json:"dayOfMonth,omitempty"`
}

// PeriodRequest временной интервал
type PeriodRequest struct {
	Date      *string           `json:"date,omitempty"` // только для одиночных
	StartTime string            `json:"startTime"`      // "10:00"
	EndTime   string            `json:"endTime"`        // "11:00"
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// RulesRequest переопределения правил валидации для этого бронирования
type RulesRequest struct {
	WorkingHours *WorkingHoursRequest `json:"workingHours,omitempty"`
	MaxDuration  *MaxDurationRequest  `json:"maxDuration,omitempty"`
	NoWeekends   *NoWeekendsRequest   `json:"noWeekends,omitempty"`
	NoOverlap    *NoOverlapRequest    `json:"noOverlap,omitempty"`
}

type WorkingHoursRequest struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

type MaxDurationRequest struct {
	Enabled bool `json:"enabled"`
	Minutes int  `json:"minutes,omitempty"`
}

type NoWeekendsRequest struct {
	Enabled  bool `json:"enabled"`
	Saturday bool `json:"saturday"`
	Sunday   bool `json:"sunday"`
}

type NoOverlapRequest struct {
	Enabled   bool     `json:"enabled"`
	AppliesTo []string `json:"appliesTo,omitempty"`
}

// ValidationFieldsResponse тело ответа с агрегированным отчетом валидации
type ValidationFieldsResponse struct {
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields"`
}

// ConflictResponse тело ответа при конфликте с существующими бронированиями
type ConflictResponse struct {
	Message   string         `json:"message"`
	Conflicts []ConflictItem `json:"conflicts"`
}

// ConflictItem краткое описание конфликтующего бронирования
type ConflictItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	var endDate *time.Time
	if r.EndDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &parsed
	}

	req := &createBooking.Request{
		OwnerKind:   r.OwnerKind,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		IsRecurring: r.IsRecurring,
		Type:        r.Type,
		Metadata:    r.Metadata,
	}

	if r.Recurrence != nil {
		req.Recurrence = &createBooking.RecurrenceSpec{
			Kind:          r.Recurrence.Kind,
			Weekdays:      r.Recurrence.Weekdays,
			IntervalWeeks: r.Recurrence.IntervalWeeks,
			DayOfMonth:    r.Recurrence.DayOfMonth,
		}
	}

	req.Periods = make([]createBooking.PeriodSpec, len(r.Periods))
	for i, p := range r.Periods {
		spec := createBooking.PeriodSpec{
			StartTime: p.StartTime,
			EndTime:   p.EndTime,
			Metadata:  p.Metadata,
		}
		if p.Date != nil {
			parsed, err := time.Parse(domain.DateFormat, *p.Date)
			if err != nil {
				return nil, err
			}
			spec.Date = &parsed
		}
		req.Periods[i] = spec
	}

	if r.Rules != nil {
		req.Rules = r.Rules.toSpec()
	}

	return req, nil
}

func (r *RulesRequest) toSpec() *createBooking.RulesSpec {
	spec := &createBooking.RulesSpec{}

	if r.WorkingHours != nil {
		spec.WorkingHours = &createBooking.WorkingHoursSpec{
			Enabled: r.WorkingHours.Enabled,
			Start:   r.WorkingHours.Start,
			End:     r.WorkingHours.End,
		}
	}
	if r.MaxDuration != nil {
		spec.MaxDuration = &createBooking.MaxDurationSpec{
			Enabled: r.MaxDuration.Enabled,
			Minutes: r.MaxDuration.Minutes,
		}
	}
	if r.NoWeekends != nil {
		spec.NoWeekends = &createBooking.NoWeekendsSpec{
			Enabled:  r.NoWeekends.Enabled,
			Saturday: r.NoWeekends.Saturday,
			Sunday:   r.NoWeekends.Sunday,
		}
	}
	if r.NoOverlap != nil {
		spec.NoOverlap = &createBooking.NoOverlapSpec{
			Enabled:   r.NoOverlap.Enabled,
			AppliesTo: r.NoOverlap.AppliesTo,
		}
	}

	return spec
}

// FromConflictError собирает тело 409 ответа из отчета о конфликтах
func FromConflictError(message string, conflictErr *domain.ConflictError) *ConflictResponse {
	items := make([]ConflictItem, len(conflictErr.Conflicts))
	for i, b := range conflictErr.Conflicts {
		items[i] = ConflictItem{
			ID:   b.ID,
			Name: b.Name,
			Type: string(b.Type),
		}
	}

	return &ConflictResponse{
		Message:   message,
		Conflicts: items,
	}
}
