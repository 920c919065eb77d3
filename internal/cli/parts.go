package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/bootstrap"
	domaininv "github.com/jhoicas/Taller-api/internal/domain/inventory"
)

func partsCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "Consultas de inventario",
	}
	cmd.AddCommand(partsLowCmd(open))
	cmd.AddCommand(partsValuationCmd(open))
	return cmd
}

func partsLowCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "low",
		Short: "Lista las partes en o bajo el mínimo con la cantidad sugerida a pedir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				list, err := app.Replenishment.GenerateReplenishmentList(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintf(out, "%s sin partes bajo el mínimo\n", okMark)
					return nil
				}
				red := color.New(color.FgRed).SprintFunc()
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "#\tPARTE\tNOMBRE\tSTOCK\tMÍNIMO\tPEDIR")
				for _, s := range list {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
						s.Priority, s.PartNumber, s.PartName, red(s.CurrentStock), s.MinThreshold, s.SuggestedOrderQty.String())
				}
				return w.Flush()
			})
		},
	}
}

func partsValuationCmd(open Opener) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "valuation",
		Short: "Muestra el valor del inventario y opcionalmente lo exporta a XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				report, err := app.Parts.Valuation(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "partes: %d  unidades: %d  costo: %s  venta: %s\n",
					len(report.Lines), report.TotalUnits,
					report.TotalCost.StringFixed(domaininv.MoneyPlaces), report.TotalRetail.StringFixed(domaininv.MoneyPlaces))
				if outPath == "" {
					return nil
				}
				data, err := app.Parts.ExportValuation(ctx)
				if err != nil {
					return err
				}
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return fmt.Errorf("escribir %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s exportado a %s\n", okMark, outPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "archivo .xlsx de salida")
	return cmd
}
