// Package bootstrap arma el grafo de dependencias (base de datos, repositorios y casos de uso)
// compartido por el servidor HTTP y la CLI.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/Taller-api/internal/application/analytics"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/gateway"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/vehicle"
	"github.com/jhoicas/Taller-api/internal/application/workshop"
	"github.com/jhoicas/Taller-api/internal/infrastructure/excel"
	"github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlstore"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// App contiene el store abierto y los casos de uso listos para usar.
type App struct {
	Store         *sqlstore.Store
	Auth          *auth.AuthUseCase
	Ledger        *inventory.LedgerUseCase
	Parts         *inventory.PartUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Vehicles      *vehicle.UseCase
	Jobs          *workshop.JobUseCase
	Gateway       *gateway.UseCase
	Dashboard     *analytics.DashboardUseCase

	closer io.Closer
}

// OpenStore abre la base según cfg.Driver, aplica el esquema y devuelve el store junto con
// el closer que libera el handle (y el pool pgx en Postgres).
func OpenStore(ctx context.Context, cfg config.DBConfig) (*sqlstore.Store, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.New(db, sqlite.Dialect{}), db, nil
	case config.DriverPostgres:
		db, err := postgres.OpenDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.New(db.DB, postgres.Dialect{}), db, nil
	default:
		return nil, nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
	}
}

// New abre la base y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, authOpts ...auth.Option) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	store, closer, err := OpenStore(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	workshopInfo := dto.WorkshopInfo{
		Name:    cfg.Workshop.Name,
		Address: cfg.Workshop.Address,
		Phone:   cfg.Workshop.Phone,
	}
	ledger := inventory.NewLedgerUseCase(store.TxRunner, log.Named("ledger"))

	return &App{
		Store: store,
		Auth: auth.NewAuthUseCase(store.Users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}, log.Named("auth"), authOpts...),
		Ledger:        ledger,
		Parts:         inventory.NewPartUseCase(store.Parts, store.Movements, excel.NewValuationExporter(), cfg.Workshop.Name),
		Replenishment: inventory.NewReplenishmentUseCase(store.Parts),
		Vehicles:      vehicle.NewUseCase(store.TxRunner, store.Vehicles, store.History, store.Parts, cfg.Workshop.Region, log.Named("vehicles")),
		Jobs: workshop.NewJobUseCase(store.TxRunner, ledger, workshop.Repositories{
			Jobs:     store.Jobs,
			JobParts: store.JobParts,
			Labor:    store.LaborCharges,
			Tasks:    store.JobTasks,
			Images:   store.JobImages,
			Vehicles: store.Vehicles,
			Users:    store.Users,
		}, pdf.NewMarotoPDFGenerator(), workshopInfo, log.Named("jobs")),
		Gateway:   gateway.NewUseCase(store.Gateway, log.Named("gateway")),
		Dashboard: analytics.NewDashboardUseCase(store.Analytics),
		closer:    closer,
	}, nil
}

// Close libera la conexión a la base de datos.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
