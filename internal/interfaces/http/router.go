package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/analytics"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/gateway"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/vehicle"
	"github.com/jhoicas/Taller-api/internal/application/workshop"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Ledger        *inventory.LedgerUseCase
	PartUC        *inventory.PartUseCase
	Replenishment *inventory.ReplenishmentUseCase
	VehicleUC     *vehicle.UseCase
	JobUC         *workshop.JobUseCase
	GatewayUC     *gateway.UseCase
	DashboardUC   *analytics.DashboardUseCase
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Post("/auth/tech-login", authHandler.TechLogin)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleTechnician)

	protected.Get("/auth/me", anyRole, authHandler.Me)

	// Usuarios (admin)
	users := protected.Group("/users", adminOnly)
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id/rate", authHandler.UpdateRate)

	jobHandler := NewJobHandler(deps.JobUC, deps.Log)
	protected.Get("/technicians", anyRole, authHandler.ListTechnicians)
	protected.Get("/technicians/:id/jobs", anyRole, jobHandler.TechnicianJobs)

	// Inventario: recepción y edición solo admin; consumo y lectura cualquier rol
	invHandler := NewInventoryHandler(deps.Ledger, deps.PartUC, deps.Replenishment, deps.Log)
	inv := protected.Group("/inventory")
	inv.Post("/receive", adminOnly, invHandler.ReceiveStock)
	inv.Post("/consume", anyRole, invHandler.ConsumeStock)
	inv.Get("/replenishment-list", adminOnly, invHandler.GetReplenishmentList)
	inv.Get("/valuation", adminOnly, invHandler.GetValuation)
	inv.Get("/valuation.xlsx", adminOnly, invHandler.ExportValuation)

	parts := protected.Group("/parts", anyRole)
	parts.Get("/", invHandler.ListParts)
	parts.Get("/:id", invHandler.GetPart)
	parts.Put("/:id", adminOnly, invHandler.UpdatePart)
	parts.Get("/:id/movements", invHandler.ListMovements)

	// Vehículos
	vehHandler := NewVehicleHandler(deps.VehicleUC, deps.JobUC, deps.Log)
	vehicles := protected.Group("/vehicles", anyRole)
	vehicles.Post("/", vehHandler.Register)
	vehicles.Get("/", vehHandler.List)
	vehicles.Get("/plate/:plate", vehHandler.GetByPlate)
	vehicles.Get("/:id", vehHandler.Get)
	vehicles.Put("/:id", vehHandler.Update)
	vehicles.Post("/:id/transfer", adminOnly, vehHandler.Transfer)
	vehicles.Get("/:id/history", vehHandler.History)
	vehicles.Get("/:id/jobs", vehHandler.Jobs)
	protected.Get("/suggestions/:type", anyRole, vehHandler.Suggestions)

	// Trabajos
	jobs := protected.Group("/jobs", anyRole)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.ListActive)
	jobs.Get("/mine", jobHandler.MyJobs)
	jobs.Get("/:id", jobHandler.Get)
	jobs.Put("/:id/status", jobHandler.TransitionStatus)
	jobs.Put("/:id/technician", adminOnly, jobHandler.AssignTechnician)
	jobs.Put("/:id/taxi-cost", adminOnly, jobHandler.SetTaxiCost)
	jobs.Post("/:id/parts", jobHandler.AddPart)
	jobs.Post("/:id/labor", jobHandler.RecordLabor)
	jobs.Post("/:id/recompute", adminOnly, jobHandler.Recompute)
	jobs.Post("/:id/tasks", jobHandler.AddTask)
	jobs.Put("/:id/tasks/:taskId", jobHandler.ToggleTask)
	jobs.Delete("/:id/tasks/:taskId", jobHandler.DeleteTask)
	jobs.Post("/:id/images", jobHandler.AddImage)
	jobs.Get("/:id/invoice.pdf", adminOnly, jobHandler.InvoicePDF)

	// Tablero (admin)
	dashHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	protected.Get("/dashboard/summary", adminOnly, dashHandler.GetSummary)

	// Gateway SQL (admin)
	gwHandler := NewGatewayHandler(deps.GatewayUC, deps.Log)
	db := protected.Group("/db", adminOnly)
	db.Post("/query", gwHandler.Query)
	db.Post("/command", gwHandler.Command)
}
