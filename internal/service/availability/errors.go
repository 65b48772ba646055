package availability

import "errors"

var (
	// ErrInternal внутренняя ошибка движка доступности
	ErrInternal = errors.New("internal error")

	// ErrNoSlotAvailable в пределах горизонта поиска нет свободного слота
	ErrNoSlotAvailable = errors.New("no slot available within horizon")
)
