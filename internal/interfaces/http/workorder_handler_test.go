package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrica-erp/fabrica-api/internal/application/usecase"
	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/domain/repository"
	apphttp "github.com/fabrica-erp/fabrica-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs mínimos para ejercitar el handler con el caso de uso real
// ──────────────────────────────────────────────────────────────────────────────

// stubOrderRepo guarda una sola orden en memoria.
type stubOrderRepo struct {
	order *entity.WorkOrder
}

func (r *stubOrderRepo) Create(_ context.Context, _ *entity.WorkOrder) error { return nil }

func (r *stubOrderRepo) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	if r.order == nil || r.order.ID != id {
		return nil, nil
	}
	cp := *r.order
	return &cp, nil
}

func (r *stubOrderRepo) ListAll(_ context.Context) ([]*entity.WorkOrder, error) { return nil, nil }
func (r *stubOrderRepo) ListByManager(_ context.Context, _ string) ([]*entity.WorkOrder, error) {
	return nil, nil
}
func (r *stubOrderRepo) ListByAssignee(_ context.Context, _ string) ([]*entity.WorkOrder, error) {
	return nil, nil
}
func (r *stubOrderRepo) UpdateManager(_ context.Context, _, _ string) error  { return nil }
func (r *stubOrderRepo) UpdateAssignee(_ context.Context, _, _ string) error { return nil }

func (r *stubOrderRepo) ReplaceAssignees(_ context.Context, _ string, employeeIDs []string) error {
	r.order.AssignedEmployeeIDs = append([]string(nil), employeeIDs...)
	return nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, _ string, _ entity.Status, _ []entity.Material, _ decimal.Decimal) error {
	return nil
}

type stubEmployeeRepo struct{}

func (stubEmployeeRepo) Create(_ context.Context, _ *entity.Employee) error { return nil }
func (stubEmployeeRepo) GetByID(_ context.Context, _ string) (*entity.Employee, error) {
	return nil, nil
}
func (stubEmployeeRepo) GetByEmail(_ context.Context, _ string) (*entity.Employee, error) {
	return nil, nil
}
func (stubEmployeeRepo) GetByIDs(_ context.Context, _ []string) ([]*entity.Employee, error) {
	return nil, nil
}
func (stubEmployeeRepo) List(_ context.Context) ([]*entity.Employee, error) { return nil, nil }
func (stubEmployeeRepo) ListByDepartment(_ context.Context, _ string) ([]*entity.Employee, error) {
	return nil, nil
}
func (stubEmployeeRepo) Delete(_ context.Context, _ string) error { return nil }

type stubDepartmentRepo struct{}

func (stubDepartmentRepo) Create(_ context.Context, _ *entity.Department) error { return nil }
func (stubDepartmentRepo) GetByID(_ context.Context, _ string) (*entity.Department, error) {
	return nil, nil
}
func (stubDepartmentRepo) List(_ context.Context) ([]*entity.Department, error) { return nil, nil }

type stubTxRunner struct {
	orders repository.WorkOrderRepository
}

func (t *stubTxRunner) Run(_ context.Context, fn func(orders repository.WorkOrderRepository) error) error {
	return fn(t.orders)
}

type stubBroadcaster struct {
	events []string
}

func (b *stubBroadcaster) Broadcast(event string, _ any) {
	b.events = append(b.events, event)
}

// ──────────────────────────────────────────────────────────────────────────────
// PUT /api/workorders/:id/assign-employees
// ──────────────────────────────────────────────────────────────────────────────

// La ruta acepta un arreglo vacío: reemplaza el conjunto y deja la orden sin
// asignados, igual que cualquier otro reemplazo.
func TestAssignEmployeesRoute_ArregloVacioLimpiaElConjunto(t *testing.T) {
	const orderID = "wo-0001"
	orders := &stubOrderRepo{order: &entity.WorkOrder{
		ID:                  orderID,
		Product:             "Chasis soldado",
		DepartmentID:        testDeptID,
		AssignedEmployeeIDs: []string{"emp-a", "emp-b"},
		Status:              entity.StatusPending,
	}}
	broadcaster := &stubBroadcaster{}
	uc := usecase.NewWorkOrderUseCase(
		orders,
		stubEmployeeRepo{},
		stubDepartmentRepo{},
		&stubTxRunner{orders: orders},
		broadcaster,
	)
	h := apphttp.NewWorkOrderHandler(uc, nil)

	app := fiber.New()
	app.Put("/api/workorders/:id/assign-employees",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole("manager"),
		h.AssignEmployees,
	)

	req := httptest.NewRequest(http.MethodPut, "/api/workorders/"+orderID+"/assign-employees",
		strings.NewReader(`{"assigned_employees": []}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "manager"))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode,
		"un conjunto vacío es un reemplazo válido, no un error de validación")

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["assigned_employees"])

	assert.Empty(t, orders.order.AssignedEmployeeIDs, "el conjunto persistido debe quedar vacío")
	assert.Contains(t, broadcaster.events, "workorder_updated")
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/auth/register — política de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterRoute_PasswordCortaRechazada(t *testing.T) {
	// La validación corta el camino antes de tocar el caso de uso.
	h := apphttp.NewAuthHandler(nil)
	app := fiber.New()
	app.Post("/api/auth/register", h.Register)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Ana","email":"ana@fabrica.test","password":"corta12","role":"employee"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["message"], "8 caracteres")
}
