package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Три вида ошибок движка. Construction и Validation исправимы вызывающей
// стороной, Conflict - нет: повторное чтение того же отчета слот не освободит.

// ConstructionError означает, что кандидат структурно непригоден
// (нет владельца или даты начала) - проверяется до запуска любых правил
type ConstructionError struct {
	Field   string
	Message string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construction error: %s: %s", e.Field, e.Message)
}

// ValidationError агрегированный отчет поле -> сообщения от всех
// не-конфликтных правил. Пайплайн прогоняет все правила до конца и
// отдает все найденные проблемы одним отчетом.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError создает пустой отчет валидации
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add добавляет сообщение об ошибке для поля
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors возвращает true, если отчет не пуст
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}

	return "validation error: " + strings.Join(parts, ", ")
}

// ConflictError поднимается немедленно при любом обнаруженном пересечении.
// Несет полный список конфликтующих бронирований, а не только первое.
type ConflictError struct {
	Conflicts []*Booking
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return fmt.Sprintf("conflict with booking id=%d %q", e.Conflicts[0].ID, e.Conflicts[0].Name)
	}
	return fmt.Sprintf("conflict with %d existing bookings", len(e.Conflicts))
}
