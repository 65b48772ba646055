package validation

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Service пайплайн валидации кандидата бронирования.
//
// Порядок работы:
//  1. Структурные проверки (владелец, дата начала) - ConstructionError до запуска правил.
//  2. Все не-конфликтные правила прогоняются до конца, нарушения копятся
//     в один отчет ValidationError (поле -> сообщения).
//  3. Правило noOverlap запускается последним и падает немедленно с
//     ConflictError, неся полный список конфликтующих бронирований.
//
// Асимметрия намеренная: исправимые проблемы ввода показываются все сразу,
// а "это время занято" - категорически другая ошибка, повторное чтение
// того же отчета ее не исправит.
type Service struct {
	conflictFinder ConflictFinder
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает пайплайн валидации
func NewService(conflictFinder ConflictFinder, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		conflictFinder: conflictFinder,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Validate прогоняет кандидата через пайплайн.
// Возвращает nil, *domain.ConstructionError, *domain.ValidationError
// или *domain.ConflictError.
func (s *Service) Validate(ctx context.Context, candidate *domain.CandidateBooking, cfg domain.SchedulingConfig) error {
	if err := checkConstruction(candidate); err != nil {
		return err
	}

	rules := cfg.Rules.Merge(candidate.Rules)

	report := domain.NewValidationError()
	s.checkDates(candidate, cfg, report)
	checkRecurrence(candidate, report)
	checkPeriods(candidate, cfg, report)
	applyWorkingHours(candidate, rules.WorkingHours, report)
	applyMaxDuration(candidate, rules.MaxDuration, report)
	applyNoWeekends(candidate, rules.NoWeekends, report)

	if report.HasErrors() {
		return report
	}

	if !rules.NoOverlap.Enabled {
		return nil
	}

	conflicts, err := s.conflictFinder.FindConflicts(ctx, candidate, cfg, rules.NoOverlap.AppliesTo)
	if err != nil {
		s.logger.Error("[ValidationService.Validate] Conflict detection failed: owner=%s/%s, error=%v",
			candidate.Owner.Kind, candidate.Owner.ID, err)
		return fmt.Errorf("%w: Validate - conflict detection failed: %v", ErrInternal, err)
	}

	if len(conflicts) > 0 {
		return &domain.ConflictError{Conflicts: conflicts}
	}

	return nil
}
