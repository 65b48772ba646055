package domain

import "time"

// CandidateBooking is the assembled, not-yet-validated draft of a booking.
// Produced by the caller's builder, consumed by the validation pipeline.
type CandidateBooking struct {
	Owner       OwnerRef
	Name        string
	Description string

	StartDate time.Time
	EndDate   *time.Time

	IsRecurring bool
	Recurrence  RecurrencePattern

	Type     BookingType
	Metadata map[string]string
	IsActive bool

	Periods []Period

	// Переопределения правил валидации, накладываются поверх умолчаний
	Rules RuleOverrides
}

// ToBooking converts a validated candidate into a persistable booking
func (c *CandidateBooking) ToBooking() *Booking {
	return &Booking{
		Owner:       c.Owner,
		Name:        c.Name,
		Description: c.Description,
		StartDate:   DateOnly(c.StartDate),
		EndDate:     c.EndDate,
		IsRecurring: c.IsRecurring,
		Recurrence:  c.Recurrence,
		Type:        c.Type,
		Metadata:    c.Metadata,
		IsActive:    c.IsActive,
		Periods:     c.Periods,
	}
}
