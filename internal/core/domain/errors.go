package domain

import (
	"errors"
	"fmt"
)

// Сентинел-ошибки, возвращаемые из Use Cases.
var (
	ErrNotFound      = errors.New("listing not found")
	ErrNotAuthorized = errors.New("caller is not the owning manager")
)

// ValidationError — отсутствует или некорректно обязательное поле.
// Ничего не записано, побочных эффектов не было.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field %q: %s", e.Field, e.Reason)
}

// GeocodeFailure — внешний геокодер не разрешил адрес. Терминальна для
// шага, который её получил. Status — сырой статус провайдера для диагностики.
type GeocodeFailure struct {
	Address string
	Status  string
	Err     error
}

func (e *GeocodeFailure) Error() string {
	return fmt.Sprintf("geocode failed for %q: provider status %q", e.Address, e.Status)
}

func (e *GeocodeFailure) Unwrap() error { return e.Err }

// StorageFailure — операция с объектным хранилищем не удалась.
// Ошибки загрузки терминальны, ошибки удаления логируются и глотаются
// оркестратором.
type StorageFailure struct {
	Op  string // "upload" | "delete"
	Key string
	Err error
}

func (e *StorageFailure) Error() string {
	return fmt.Sprintf("object storage %s failed for %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageFailure) Unwrap() error { return e.Err }

// GeometryParseError — сохраненное геометрическое значение не декодируется.
// Это порча данных или расхождение схемы: для строки фатально, в null
// координаты молча не превращается.
type GeometryParseError struct {
	Text string
}

func (e *GeometryParseError) Error() string {
	return fmt.Sprintf("cannot parse spatial text %q as a point", e.Text)
}

// TransactionFailure — составной транзакционный delete не прошёл.
// Гарантируется полный откат всех четырех удалений.
type TransactionFailure struct {
	Stage string
	Err   error
}

func (e *TransactionFailure) Error() string {
	return fmt.Sprintf("delete transaction failed at %s: %v", e.Stage, e.Err)
}

func (e *TransactionFailure) Unwrap() error { return e.Err }
