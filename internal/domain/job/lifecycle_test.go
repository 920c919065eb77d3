package job_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/job"
)

func km(v int64) *int64 { return &v }

func TestCanTransition_Tabla(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.JobStatusPending, entity.JobStatusInProgress, true},
		{entity.JobStatusPending, entity.JobStatusCompleted, true},
		{entity.JobStatusPending, entity.JobStatusWaiting, false},
		{entity.JobStatusInProgress, entity.JobStatusWaiting, true},
		{entity.JobStatusInProgress, entity.JobStatusCompleted, true},
		{entity.JobStatusInProgress, entity.JobStatusPending, false},
		{entity.JobStatusWaiting, entity.JobStatusInProgress, true},
		{entity.JobStatusWaiting, entity.JobStatusCompleted, true},
		{entity.JobStatusWaiting, entity.JobStatusPending, false},
		{entity.JobStatusCompleted, entity.JobStatusPending, false},
		{entity.JobStatusCompleted, entity.JobStatusInProgress, false},
		{entity.JobStatusCompleted, entity.JobStatusWaiting, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, job.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

// Ningún estado admite transición a sí mismo.
func TestCheckTransition_AutoTransicionFalla(t *testing.T) {
	for _, s := range job.Statuses() {
		err := job.CheckTransition(job.TransitionRequest{From: s, To: s})
		require.Error(t, err, s)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		var te *domain.TransitionError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, s, te.From)
		assert.Equal(t, s, te.To)
	}
}

func TestCheckTransition_EstadoDesconocido(t *testing.T) {
	err := job.CheckTransition(job.TransitionRequest{From: entity.JobStatusPending, To: "in-progress"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Frontera: salida igual a la entrada se permite; uno menos falla.
func TestCheckTransition_KilometrajeFrontera(t *testing.T) {
	ok := job.CheckTransition(job.TransitionRequest{
		From: entity.JobStatusInProgress, To: entity.JobStatusCompleted,
		MileageIn: 52000, MileageOut: km(52000),
	})
	assert.NoError(t, ok)

	err := job.CheckTransition(job.TransitionRequest{
		From: entity.JobStatusInProgress, To: entity.JobStatusCompleted,
		MileageIn: 52000, MileageOut: km(51999),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMileage)
}

// Completar sin kilometraje de salida no evalúa la regla de kilometraje.
func TestCheckTransition_CompletarSinKilometraje(t *testing.T) {
	err := job.CheckTransition(job.TransitionRequest{
		From: entity.JobStatusPending, To: entity.JobStatusCompleted, MileageIn: 100,
	})
	assert.NoError(t, err)
}

// La transición se evalúa antes que el kilometraje.
func TestCheckTransition_TerminalConKilometraje(t *testing.T) {
	err := job.CheckTransition(job.TransitionRequest{
		From: entity.JobStatusCompleted, To: entity.JobStatusCompleted,
		MileageIn: 100, MileageOut: km(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Fuera de completed el kilometraje de salida no se valida.
func TestCheckTransition_KilometrajeIgnoradoSiNoCompleta(t *testing.T) {
	err := job.CheckTransition(job.TransitionRequest{
		From: entity.JobStatusPending, To: entity.JobStatusInProgress,
		MileageIn: 1000, MileageOut: km(500),
	})
	assert.NoError(t, err)

	err = job.CheckTransition(job.TransitionRequest{
		From: entity.JobStatusInProgress, To: entity.JobStatusWaiting,
		MileageIn: 1000, MileageOut: km(-1),
	})
	assert.NoError(t, err)
}

func TestAllowedTargets_CopiaDefensiva(t *testing.T) {
	targets := job.AllowedTargets(entity.JobStatusPending)
	require.Len(t, targets, 2)
	targets[0] = "x"
	assert.True(t, job.CanTransition(entity.JobStatusPending, entity.JobStatusInProgress))
	assert.Empty(t, job.AllowedTargets(entity.JobStatusCompleted))
	assert.Nil(t, job.AllowedTargets("desconocido"))
}
