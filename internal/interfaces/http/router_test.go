package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Taller-api/internal/application/analytics"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/gateway"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/vehicle"
	"github.com/jhoicas/Taller-api/internal/application/workshop"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/excel"
	"github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlite/sqlitetest"
	apphttp "github.com/jhoicas/Taller-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Taller-api/pkg/jwt"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

type apiFixture struct {
	app        *fiber.App
	adminToken string
	techToken  string
	techID     int64
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	s := sqlitetest.NewStore(t)
	log := logger.Nop()

	authUC := auth.NewAuthUseCase(s.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		log, auth.WithBcryptCost(bcrypt.MinCost))
	_, err := authUC.EnsureDefaultTechnician(ctx)
	require.NoError(t, err)
	admin, err := authUC.CreateUser(ctx, dto.CreateUserRequest{FullName: "Admin", Role: entity.RoleAdmin, PIN: "9999"})
	require.NoError(t, err)
	techs, err := authUC.ListTechnicians(ctx)
	require.NoError(t, err)
	require.Len(t, techs, 1)

	ledger := inventory.NewLedgerUseCase(s.TxRunner, log)
	jobUC := workshop.NewJobUseCase(s.TxRunner, ledger, workshop.Repositories{
		Jobs:     s.Jobs,
		JobParts: s.JobParts,
		Labor:    s.LaborCharges,
		Tasks:    s.JobTasks,
		Images:   s.JobImages,
		Vehicles: s.Vehicles,
		Users:    s.Users,
	}, pdf.NewMarotoPDFGenerator(), dto.WorkshopInfo{Name: "Taller Peugeot"}, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		Ledger:        ledger,
		PartUC:        inventory.NewPartUseCase(s.Parts, s.Movements, excel.NewValuationExporter(), "Taller Peugeot"),
		Replenishment: inventory.NewReplenishmentUseCase(s.Parts),
		VehicleUC:     vehicle.NewUseCase(s.TxRunner, s.Vehicles, s.History, s.Parts, "LK", log),
		JobUC:         jobUC,
		GatewayUC:     gateway.NewUseCase(s.Gateway, log),
		DashboardUC:   analytics.NewDashboardUseCase(s.Analytics),
		JWTSecret:     testJWTSecret,
		Log:           log,
	})

	adminTok, err := pkgjwt.Generate(testJWTSecret, admin.ID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	techTok, err := pkgjwt.Generate(testJWTSecret, techs[0].ID, entity.RoleTechnician, testIssuer, testExpMin)
	require.NoError(t, err)
	return &apiFixture{app: app, adminToken: "Bearer " + adminTok, techToken: "Bearer " + techTok, techID: techs[0].ID}
}

// call envía body como JSON y decodifica la respuesta en out (si no es nil).
func (f *apiFixture) call(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAPI_TechLoginConPINPorDefecto(t *testing.T) {
	f := newAPI(t)

	var out dto.LoginResponse
	status := f.call(t, http.MethodPost, "/api/auth/tech-login", "", fiber.Map{"pin": auth.DefaultTechnicianPIN}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, f.techID, out.User.ID)

	var errBody dto.ErrorResponse
	status = f.call(t, http.MethodPost, "/api/auth/tech-login", "", fiber.Map{"pin": "0000"}, &errBody)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.CodeUnauthorized, errBody.Code)

	status = f.call(t, http.MethodPost, "/api/auth/tech-login", "", fiber.Map{"pin": "x"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errBody.Code)
}

func TestAPI_StockRecepcionYConsumo(t *testing.T) {
	f := newAPI(t)

	var rec dto.ReceiveStockResponse
	status := f.call(t, http.MethodPost, "/api/inventory/receive", f.adminToken,
		fiber.Map{"part_number": "P001", "quantity": 10, "unit_cost": "8.00", "retail_price": "15.00"}, &rec)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, rec.Created)

	status = f.call(t, http.MethodPost, "/api/inventory/receive", f.adminToken,
		fiber.Map{"part_number": "P001", "quantity": 5, "unit_cost": "11.00"}, &rec)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, decimal.NewFromInt(9).Equal(rec.AvgCost), "avg %s", rec.AvgCost)
	assert.Equal(t, 15, rec.Quantity)

	// El técnico no puede recibir stock.
	status = f.call(t, http.MethodPost, "/api/inventory/receive", f.techToken,
		fiber.Map{"part_number": "P001", "quantity": 1, "unit_cost": "1"}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var errBody dto.ErrorResponse
	status = f.call(t, http.MethodPost, "/api/inventory/consume", f.techToken,
		fiber.Map{"part_id": rec.PartID, "quantity": 16}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeInsufficientStock, errBody.Code)

	var cons dto.ConsumeStockResponse
	status = f.call(t, http.MethodPost, "/api/inventory/consume", f.techToken,
		fiber.Map{"part_id": rec.PartID, "quantity": 15}, &cons)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, cons.Quantity)

	status = f.call(t, http.MethodPost, "/api/inventory/consume", f.techToken,
		fiber.Map{"part_id": 999, "quantity": 1}, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, errBody.Code)

	status = f.call(t, http.MethodPost, "/api/inventory/receive", f.adminToken,
		fiber.Map{"part_number": "P002", "quantity": 0, "unit_cost": "1"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errBody.Code)
}

func TestAPI_FlujoDeTrabajo(t *testing.T) {
	f := newAPI(t)

	var v dto.VehicleResponse
	status := f.call(t, http.MethodPost, "/api/vehicles", f.techToken,
		fiber.Map{"license_plate": "cab-1234", "make_model": "Peugeot 308", "current_owner": "Nimal"}, &v)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "CAB-1234", v.LicensePlate)

	var rec dto.ReceiveStockResponse
	status = f.call(t, http.MethodPost, "/api/inventory/receive", f.adminToken,
		fiber.Map{"part_number": "P-BUJ", "quantity": 1, "unit_cost": "5", "retail_price": "9"}, &rec)
	require.Equal(t, http.StatusCreated, status)

	var job dto.JobResponse
	status = f.call(t, http.MethodPost, "/api/jobs", f.techToken,
		fiber.Map{"vehicle_id": v.ID, "technician_id": f.techID, "mileage_in": 1000}, &job)
	require.Equal(t, http.StatusCreated, status)
	jobPath := fmt.Sprintf("/api/jobs/%d", job.ID)

	var errBody dto.ErrorResponse
	status = f.call(t, http.MethodPost, jobPath+"/parts", f.techToken, fiber.Map{"part_id": rec.PartID, "quantity": 2}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeInsufficientStock, errBody.Code)

	var added dto.AddJobPartResponse
	status = f.call(t, http.MethodPost, jobPath+"/parts", f.techToken, fiber.Map{"part_id": rec.PartID, "quantity": 1}, &added)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 0, added.RemainingQty)

	// Un técnico solo registra su propio tiempo.
	status = f.call(t, http.MethodPost, jobPath+"/labor", f.techToken,
		fiber.Map{"technician_id": f.techID + 100, "hours_worked": "1", "hourly_rate": "10"}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)

	var labor dto.RecordLaborResponse
	status = f.call(t, http.MethodPost, jobPath+"/labor", f.techToken,
		fiber.Map{"technician_id": f.techID, "hours_worked": "2", "hourly_rate": "40"}, &labor)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, decimal.NewFromInt(80).Equal(labor.TotalLaborCost))

	status = f.call(t, http.MethodPut, jobPath+"/status", f.techToken, fiber.Map{"status": "waiting"}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeInvalidTransition, errBody.Code)

	status = f.call(t, http.MethodPut, jobPath+"/status", f.techToken, fiber.Map{"status": "in_progress"}, nil)
	require.Equal(t, http.StatusOK, status)

	status = f.call(t, http.MethodPut, jobPath+"/status", f.techToken, fiber.Map{"status": "completed", "mileage_out": 999}, &errBody)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, apphttp.CodeInvalidMileage, errBody.Code)

	status = f.call(t, http.MethodPut, jobPath+"/status", f.techToken, fiber.Map{"status": "bogus"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errBody.Code)

	var tr dto.TransitionStatusResponse
	status = f.call(t, http.MethodPut, jobPath+"/status", f.techToken, fiber.Map{"status": "completed", "mileage_out": 1000}, &tr)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "in_progress", tr.OldStatus)

	var recomputed dto.JobResponse
	status = f.call(t, http.MethodPost, jobPath+"/recompute", f.adminToken, nil, &recomputed)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decimal.NewFromInt(89).Equal(recomputed.TotalPrice), "total %s", recomputed.TotalPrice)

	var detail dto.JobDetailResponse
	status = f.call(t, http.MethodGet, jobPath, f.techToken, nil, &detail)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, detail.Parts, 1)
	assert.Len(t, detail.Labor, 1)
	assert.Equal(t, "completed", detail.Job.Status)

	req := httptest.NewRequest(http.MethodGet, jobPath+"/invoice.pdf", nil)
	req.Header.Set("Authorization", f.adminToken)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestAPI_GatewaySoloAdminYSinComentarios(t *testing.T) {
	f := newAPI(t)

	status := f.call(t, http.MethodPost, "/api/db/query", f.techToken, fiber.Map{"sql": "SELECT 1"}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var errBody dto.ErrorResponse
	status = f.call(t, http.MethodPost, "/api/db/query", f.adminToken, fiber.Map{"sql": "SELECT 1 -- x"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errBody.Code)

	var rows []map[string]any
	status = f.call(t, http.MethodPost, "/api/db/query", f.adminToken,
		fiber.Map{"sql": "SELECT full_name FROM users WHERE role = ?", "params": []any{"technician"}}, &rows)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, rows, 1)
	assert.Equal(t, auth.DefaultTechnicianName, rows[0]["full_name"])

	status = f.call(t, http.MethodPost, "/api/db/command", f.adminToken, fiber.Map{"sql": "DELETE FROM nope"}, &errBody)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apphttp.CodeStorageFailure, errBody.Code)
}

func TestAPI_SinTokenRetorna401(t *testing.T) {
	f := newAPI(t)
	status := f.call(t, http.MethodGet, "/api/jobs", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = f.call(t, http.MethodGet, "/api/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_TableroSoloAdmin(t *testing.T) {
	f := newAPI(t)

	status := f.call(t, http.MethodGet, "/api/dashboard/summary", f.techToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var out dto.DashboardSummaryDTO
	status = f.call(t, http.MethodGet, "/api/dashboard/summary", f.adminToken, nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, out.ActiveJobs)
	assert.Contains(t, out.JobsByStatus, "in_progress")
}
