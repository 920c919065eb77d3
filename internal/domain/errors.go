package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrInvalidMileage    = errors.New("kilometraje de salida menor al de entrada")
	ErrStorage           = errors.New("falla de almacenamiento")
)

// InvalidInputf construye un ErrInvalidInput con detalle.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFoundf construye un ErrNotFound con detalle (ej. "parte 12").
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// TransitionError reporta el par from/to rechazado por la máquina de estados del trabajo.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition.Error(), e.From, e.To)
}

// Unwrap permite errors.Is(err, ErrInvalidTransition).
func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// StockError reporta una salida rechazada por falta de existencias.
type StockError struct {
	PartID    int64
	PartNo    string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s para la parte %s: disponible %d, solicitado %d",
		ErrInsufficientStock.Error(), e.PartNo, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// MileageError reporta un kilometraje de salida inferior al de entrada.
type MileageError struct {
	In  int64
	Out int64
}

func (e *MileageError) Error() string {
	return fmt.Sprintf("%s (entrada %d, salida %d)", ErrInvalidMileage.Error(), e.In, e.Out)
}

func (e *MileageError) Unwrap() error { return ErrInvalidMileage }

// StorageError envuelve un error del motor de BD conservando su mensaje para diagnóstico.
// errors.Is(err, ErrStorage) es verdadero y errors.As sigue llegando al error original.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage.Error(), e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// Storage envuelve err como StorageError salvo que ya sea un error de dominio conocido.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsDomainError indica si err ya pertenece a la taxonomía de dominio.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrUnauthorized, ErrForbidden,
		ErrInsufficientStock, ErrInvalidTransition, ErrInvalidMileage, ErrStorage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
