package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type stubRepo struct {
	created *domain.Booking
}

func (r *stubRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	stored := *booking
	stored.ID = 101
	r.created = &stored
	return &stored, nil
}

type stubResolver struct {
	cfg   domain.SchedulingConfig
	calls int
}

func (r *stubResolver) ResolveSchedulingConfig(_ context.Context, _ domain.OwnerRef) (domain.SchedulingConfig, error) {
	r.calls++
	return r.cfg, nil
}

type stubValidator struct {
	err       error
	candidate *domain.CandidateBooking
}

func (v *stubValidator) Validate(_ context.Context, candidate *domain.CandidateBooking, _ domain.SchedulingConfig) error {
	v.candidate = candidate
	return v.err
}

type stubTxManager struct {
	calls int
}

func (m *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		OwnerKind: "user",
		OwnerID:   "42",
		Name:      "meeting",
		StartDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Type:      "appointment",
		Periods: []PeriodSpec{
			{StartTime: "10:00", EndTime: "11:00"},
		},
	}
}

func newUseCase() (*UseCase, *stubRepo, *stubResolver, *stubValidator, *stubTxManager) {
	repo := &stubRepo{}
	resolver := &stubResolver{cfg: domain.DefaultSchedulingConfig()}
	validator := &stubValidator{}
	tx := &stubTxManager{}
	return NewUseCase(repo, resolver, validator, tx, nopLogger{}), repo, resolver, validator, tx
}

func TestExecuteOK(t *testing.T) {
	uc, repo, resolver, validator, tx := newUseCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "user", resp.OwnerKind)
	assert.Equal(t, "appointment", resp.Type)
	assert.True(t, resp.IsActive)
	require.Len(t, resp.Periods, 1)
	assert.Equal(t, "10:00", resp.Periods[0].StartTime)

	// Валидация и запись внутри одной сериализуемой транзакции
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, resolver.calls)
	require.NotNil(t, validator.candidate)
	assert.Equal(t, domain.TypeAppointment, validator.candidate.Type)
	require.NotNil(t, repo.created)
}

func TestExecuteInvalidRequest(t *testing.T) {
	uc, _, _, _, tx := newUseCase()

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing owner kind", func(req *Request) { req.OwnerKind = "" }},
		{"missing owner id", func(req *Request) { req.OwnerID = "" }},
		{"missing name", func(req *Request) { req.Name = "" }},
		{"missing type", func(req *Request) { req.Type = "" }},
		{"unknown type", func(req *Request) { req.Type = "vacation" }},
		{"recurring without pattern", func(req *Request) { req.IsRecurring = true }},
		{"unknown weekday", func(req *Request) {
			req.IsRecurring = true
			req.Recurrence = &RecurrenceSpec{Kind: "weekly", Weekdays: []string{"someday"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	// До транзакции дело не доходит
	assert.Zero(t, tx.calls)
}

func TestExecutePipelineErrorsPassThrough(t *testing.T) {
	uc, _, _, validator, _ := newUseCase()

	conflictErr := &domain.ConflictError{Conflicts: []*domain.Booking{{ID: 7}}}
	validator.err = conflictErr

	_, err := uc.Execute(context.Background(), validRequest())

	// Ошибки пайплайна доходят до вызывающей стороны без обертки
	var got *domain.ConflictError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, conflictErr.Conflicts, got.Conflicts)
}

func TestExecuteRuleOverrides(t *testing.T) {
	uc, _, _, validator, _ := newUseCase()

	req := validRequest()
	req.Rules = &RulesSpec{
		NoOverlap: &NoOverlapSpec{Enabled: true, AppliesTo: []string{"appointment", "custom"}},
	}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, validator.candidate.Rules.NoOverlap)
	assert.Equal(t, []domain.BookingType{domain.TypeAppointment, domain.TypeCustom},
		validator.candidate.Rules.NoOverlap.AppliesTo)
}
