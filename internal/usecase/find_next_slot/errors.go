package find_next_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNoSlotFound возвращается, когда в пределах горизонта нет свободного слота
	ErrNoSlotFound = errors.New("no slot found within horizon")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("usecase: internal error")
)
