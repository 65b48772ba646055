package validation

import "errors"

var (
	// ErrInternal внутренняя ошибка пайплайна (не ошибка входных данных)
	ErrInternal = errors.New("internal error")
)
