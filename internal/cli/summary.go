package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/bootstrap"
	"github.com/jhoicas/Taller-api/internal/domain/job"
)

func summaryCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Resumen del taller: trabajos, facturación del mes e inventario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.Dashboard.GetSummary(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				bold := color.New(color.Bold).SprintFunc()
				fmt.Fprintln(out, bold(s.DateLabel))
				for _, st := range job.Statuses() {
					fmt.Fprintf(out, "  %-12s %d\n", st, s.JobsByStatus[st])
				}
				fmt.Fprintf(out, "completados en el mes: %d  facturado: %s  margen: %s\n",
					s.MonthCompleted, s.MonthRevenue.StringFixed(2), s.MonthMargin.StringFixed(2))
				low := fmt.Sprint(s.Inventory.LowStock)
				if s.Inventory.LowStock > 0 {
					low = color.New(color.FgYellow).Sprint(low)
				}
				fmt.Fprintf(out, "inventario: %d partes, %d unidades, valor %s, bajo mínimo %s\n",
					s.Inventory.Parts, s.Inventory.Units, s.Inventory.Value.StringFixed(2), low)
				return nil
			})
		},
	}
}
