package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/bootstrap"
	"github.com/jhoicas/Taller-api/internal/domain"
	domaininv "github.com/jhoicas/Taller-api/internal/domain/inventory"
)

func jobCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Operaciones sobre trabajos",
	}
	cmd.AddCommand(jobStatusCmd(open))
	cmd.AddCommand(jobAddPartCmd(open))
	cmd.AddCommand(jobLaborCmd(open))
	cmd.AddCommand(jobInvoiceCmd(open))
	return cmd
}

func parseJobID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.InvalidInputf("job_id inválido: %q", arg)
	}
	return id, nil
}

func jobStatusCmd(open Opener) *cobra.Command {
	var mileageOut int64

	cmd := &cobra.Command{
		Use:   "status <job-id> <estado>",
		Short: "Cambia el estado de un trabajo (pending, in_progress, waiting, completed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				jobID, err := parseJobID(args[0])
				if err != nil {
					return err
				}
				in := dto.TransitionStatusRequest{Status: args[1]}
				if cmd.Flags().Changed("mileage-out") {
					in.MileageOut = &mileageOut
				}
				res, err := app.Jobs.TransitionStatus(ctx, jobID, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s trabajo %d: %s -> %s\n",
					okMark, res.JobID, res.OldStatus, color.New(color.FgCyan).Sprint(res.NewStatus))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&mileageOut, "mileage-out", 0, "kilometraje de salida")
	return cmd
}

func jobAddPartCmd(open Opener) *cobra.Command {
	var (
		partID   int64
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "add-part <job-id>",
		Short: "Agrega una parte al trabajo descontando stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				jobID, err := parseJobID(args[0])
				if err != nil {
					return err
				}
				res, err := app.Jobs.AddJobPart(ctx, jobID, dto.AddJobPartRequest{PartID: partID, Quantity: quantity})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s línea %d: precio %s, costo %s, quedan %d\n", okMark, res.JobPartID,
					res.PriceAtSale.StringFixed(domaininv.MoneyPlaces), res.CostAtSale.StringFixed(domaininv.MoneyPlaces), res.RemainingQty)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&partID, "part-id", 0, "id de la parte")
	cmd.Flags().IntVar(&quantity, "qty", 0, "cantidad")
	_ = cmd.MarkFlagRequired("part-id")
	_ = cmd.MarkFlagRequired("qty")
	return cmd
}

func jobLaborCmd(open Opener) *cobra.Command {
	var (
		technicianID int64
		hours, rate  string
	)

	cmd := &cobra.Command{
		Use:   "labor <job-id>",
		Short: "Registra horas de mano de obra de un técnico",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				jobID, err := parseJobID(args[0])
				if err != nil {
					return err
				}
				h, err := parseMoney("hours", hours)
				if err != nil {
					return err
				}
				r, err := parseMoney("rate", rate)
				if err != nil {
					return err
				}
				res, err := app.Jobs.RecordLabor(ctx, jobID, dto.RecordLaborRequest{
					TechnicianID: technicianID,
					HoursWorked:  h,
					HourlyRate:   r,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s mano de obra %d: total %s\n",
					okMark, res.LaborID, res.TotalLaborCost.StringFixed(domaininv.MoneyPlaces))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&technicianID, "tech", 0, "user_id del técnico")
	cmd.Flags().StringVar(&hours, "hours", "", "horas trabajadas (0-24]")
	cmd.Flags().StringVar(&rate, "rate", "", "tarifa por hora")
	_ = cmd.MarkFlagRequired("tech")
	_ = cmd.MarkFlagRequired("hours")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

func jobInvoiceCmd(open Opener) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "invoice <job-id>",
		Short: "Genera la factura PDF del trabajo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App) error {
				jobID, err := parseJobID(args[0])
				if err != nil {
					return err
				}
				data, number, err := app.Jobs.InvoicePDF(ctx, jobID)
				if err != nil {
					return err
				}
				path := outPath
				if path == "" {
					path = number + ".pdf"
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("escribir %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s factura %s en %s\n", okMark, number, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "archivo PDF de salida (por defecto <número>.pdf)")
	return cmd
}
