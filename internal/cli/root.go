// Package cli implementa los comandos de tallerctl: operaciones de inventario y de trabajos
// ejecutadas directamente contra la base de datos del taller, sin pasar por la API HTTP.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/bootstrap"
	"github.com/jhoicas/Taller-api/internal/domain"
)

// Opener abre la aplicación (base de datos y casos de uso). El caller cierra el App devuelto.
type Opener func(ctx context.Context) (*bootstrap.App, error)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

// NewRootCmd construye el comando raíz con todos los subcomandos.
func NewRootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "tallerctl",
		Short:         "Herramienta de línea de comandos del taller",
		Long:          `tallerctl opera sobre la misma base de datos que la API: esquema, stock y estados de trabajo.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(migrateCmd(open))
	root.AddCommand(seedCmd(open))
	root.AddCommand(stockCmd(open))
	root.AddCommand(partsCmd(open))
	root.AddCommand(jobCmd(open))
	root.AddCommand(summaryCmd(open))

	return root
}

// withApp abre la aplicación, ejecuta fn y la cierra.
func withApp(cmd *cobra.Command, open Opener, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := open(ctx)
	if err != nil {
		return fmt.Errorf("abrir base de datos: %w", err)
	}
	defer app.Close()
	if err := fn(ctx, app); err != nil {
		return withCode(err)
	}
	return nil
}

// codedError antepone el código de error estable al mensaje.
type codedError struct {
	code string
	err  error
}

func (e *codedError) Error() string { return fmt.Sprintf("[%s] %v", e.code, e.err) }
func (e *codedError) Unwrap() error { return e.err }

var errorCodes = []struct {
	target error
	code   string
}{
	{domain.ErrInvalidInput, "VALIDATION"},
	{domain.ErrNotFound, "NOT_FOUND"},
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidTransition, "INVALID_TRANSITION"},
	{domain.ErrInvalidMileage, "INVALID_MILEAGE"},
	{domain.ErrDuplicate, "DUPLICATE"},
	{domain.ErrUnauthorized, "UNAUTHORIZED"},
	{domain.ErrStorage, "STORAGE_FAILURE"},
}

func withCode(err error) error {
	for _, m := range errorCodes {
		if errors.Is(err, m.target) {
			return &codedError{code: m.code, err: err}
		}
	}
	return &codedError{code: "INTERNAL", err: err}
}

// ErrorCode devuelve el código asociado a un error devuelto por un comando ("" si no tiene).
func ErrorCode(err error) string {
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return ""
}

func migrateCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema de base de datos (idempotente)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%s esquema aplicado (%s)\n", okMark, app.Store.Dialect.Name())
				return nil
			})
		},
	}
}

func seedCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Crea el técnico por defecto si no hay usuarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				created, err := app.Auth.EnsureDefaultTechnician(ctx)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "%s técnico por defecto creado\n", okMark)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s ya existen usuarios, nada que sembrar\n", warnMark)
				}
				return nil
			})
		},
	}
}
