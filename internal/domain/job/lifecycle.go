// Package job contiene la lógica pura del ciclo de vida y costeo de trabajos.
// Las funciones no tienen efectos secundarios; la persistencia vive en la capa de aplicación.
package job

import (
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// transitions es la tabla de transiciones permitidas (from -> to).
// completed es terminal.
var transitions = map[string][]string{
	entity.JobStatusPending:    {entity.JobStatusInProgress, entity.JobStatusCompleted},
	entity.JobStatusInProgress: {entity.JobStatusWaiting, entity.JobStatusCompleted},
	entity.JobStatusWaiting:    {entity.JobStatusInProgress, entity.JobStatusCompleted},
	entity.JobStatusCompleted:  {},
}

// Statuses devuelve los estados válidos en orden de flujo.
func Statuses() []string {
	return []string{
		entity.JobStatusPending,
		entity.JobStatusInProgress,
		entity.JobStatusWaiting,
		entity.JobStatusCompleted,
	}
}

// IsValidStatus indica si s es un estado conocido.
func IsValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// AllowedTargets devuelve los destinos permitidos desde from (nil si from es desconocido).
func AllowedTargets(from string) []string {
	targets, ok := transitions[from]
	if !ok {
		return nil
	}
	out := make([]string, len(targets))
	copy(out, targets)
	return out
}

// CanTransition indica si from -> to está en la tabla. Las auto-transiciones nunca lo están.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// TransitionRequest es la entrada del guard de cambio de estado.
type TransitionRequest struct {
	From       string
	To         string
	MileageIn  int64
	MileageOut *int64
}

// CheckTransition evalúa un cambio de estado sin efectos secundarios.
// Reglas:
//   - To debe ser un estado conocido (ErrInvalidInput)
//   - From -> To debe estar en la tabla (TransitionError)
//   - al entrar a completed, si se informa MileageOut debe ser >= MileageIn (MileageError)
//
// En otros destinos MileageOut se ignora.
func CheckTransition(req TransitionRequest) error {
	if !IsValidStatus(req.To) {
		return domain.InvalidInputf("estado %q desconocido", req.To)
	}
	if !CanTransition(req.From, req.To) {
		return &domain.TransitionError{From: req.From, To: req.To}
	}
	if req.To == entity.JobStatusCompleted && req.MileageOut != nil {
		if *req.MileageOut < 0 {
			return domain.InvalidInputf("kilometraje de salida negativo")
		}
		if *req.MileageOut < req.MileageIn {
			return &domain.MileageError{In: req.MileageIn, Out: *req.MileageOut}
		}
	}
	return nil
}
