package kafka

import "fmt"

// ParseError ошибка разбора события. Сообщение с такой ошибкой неисправимо:
// его отправляют в DLQ и коммитят, повторная доставка не поможет.
type ParseError struct {
	// Field поле, на котором разбор упал
	Field string
	// Message описание проблемы
	Message string
}

// Error реализация error
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse event: field %q: %s", e.Field, e.Message)
}
