package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/bootstrap"
	"github.com/jhoicas/Taller-api/internal/domain"
	domaininv "github.com/jhoicas/Taller-api/internal/domain/inventory"
)

func stockCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Recepción y consumo de stock",
	}
	cmd.AddCommand(stockReceiveCmd(open))
	cmd.AddCommand(stockConsumeCmd(open))
	return cmd
}

func stockReceiveCmd(open Opener) *cobra.Command {
	var (
		partNumber, partName, category string
		unitCost, retail               string
		quantity                       int
	)

	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Registra una recepción y recalcula el costo promedio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				cost, err := parseMoney("cost", unitCost)
				if err != nil {
					return err
				}
				in := inventory.ReceiveInput{
					PartNumber: partNumber,
					PartName:   partName,
					Category:   category,
					Quantity:   quantity,
					UnitCost:   cost,
					Reference:  "cli",
				}
				if retail != "" {
					r, err := parseMoney("retail", retail)
					if err != nil {
						return err
					}
					in.RetailPrice = &r
				}
				res, err := app.Ledger.Receive(ctx, in)
				if err != nil {
					return err
				}
				action := "actualizada"
				if res.Created {
					action = "creada"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s parte %s %s (id %d): cantidad %d, costo promedio %s\n",
					okMark, partNumber, action, res.PartID, res.Quantity, res.AvgCost.StringFixed(domaininv.MoneyPlaces))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&partNumber, "part-number", "", "número de parte")
	cmd.Flags().IntVar(&quantity, "qty", 0, "cantidad recibida")
	cmd.Flags().StringVar(&unitCost, "cost", "", "costo unitario")
	cmd.Flags().StringVar(&retail, "retail", "", "precio de venta (solo partes nuevas)")
	cmd.Flags().StringVar(&category, "category", "", "categoría (solo partes nuevas)")
	cmd.Flags().StringVar(&partName, "name", "", "nombre (solo partes nuevas)")
	_ = cmd.MarkFlagRequired("part-number")
	_ = cmd.MarkFlagRequired("qty")
	_ = cmd.MarkFlagRequired("cost")

	return cmd
}

func stockConsumeCmd(open Opener) *cobra.Command {
	var (
		partID    int64
		quantity  int
		reference string
	)

	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Descuenta stock de una parte (todo o nada)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				qty, err := app.Ledger.Consume(ctx, partID, quantity, reference)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s parte %d: quedan %d\n", okMark, partID, qty)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&partID, "part-id", 0, "id de la parte")
	cmd.Flags().IntVar(&quantity, "qty", 0, "cantidad a descontar")
	cmd.Flags().StringVar(&reference, "ref", "cli", "referencia del movimiento")
	_ = cmd.MarkFlagRequired("part-id")
	_ = cmd.MarkFlagRequired("qty")

	return cmd
}

func parseMoney(flag, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.InvalidInputf("--%s no es un número válido: %q", flag, s)
	}
	return d, nil
}
