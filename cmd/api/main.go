package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Taller-api/docs"
	"github.com/jhoicas/Taller-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// @title                       Taller API
// @version                     1.0
// @description                 Back office del taller: inventario, vehículos, trabajos y facturación.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET no configurado")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación finalizada con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run abre la base, sirve HTTP hasta recibir SIGINT/SIGTERM y cierra la base al salir.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("abrir base de datos: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar base de datos")
		}
	}()

	created, err := app.Auth.EnsureDefaultTechnician(ctx)
	if err != nil {
		return fmt.Errorf("crear técnico por defecto: %w", err)
	}
	if created {
		log.Warn().Msg("técnico por defecto creado, cambie el PIN")
	}

	server := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	server.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	server.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	httpRouter.Router(server, httpRouter.RouterDeps{
		AuthUC:        app.Auth,
		Ledger:        app.Ledger,
		PartUC:        app.Parts,
		Replenishment: app.Replenishment,
		VehicleUC:     app.Vehicles,
		JobUC:         app.Jobs,
		GatewayUC:     app.Gateway,
		DashboardUC:   app.Dashboard,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log.Named("http"),
	})

	go func() {
		if err := server.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	return nil
}
