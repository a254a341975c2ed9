package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fabrica-erp/fabrica-api/internal/application/auth"
	"github.com/fabrica-erp/fabrica-api/internal/application/usecase"
	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/infrastructure/realtime"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	WorkOrderUC  *usecase.WorkOrderUseCase
	ReportUC     *usecase.ReportUseCase
	DepartmentUC *usecase.DepartmentUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	DashboardUC  *usecase.DashboardUseCase
	Hub          *realtime.Hub
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	admin := string(entity.RoleAdmin)
	manager := string(entity.RoleManager)
	employee := string(entity.RoleEmployee)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// WebSocket de tiempo real (los eventos no llevan datos sensibles
	// más allá de la propia orden; el upgrade no exige token)
	app.Get("/ws", realtime.Upgrade, deps.Hub.Handler())

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Órdenes de trabajo (protegido; autorización fina en el caso de uso)
	orders := protected.Group("/workorders")
	orderHandler := NewWorkOrderHandler(deps.WorkOrderUC, deps.ReportUC)
	orders.Post("/admin", RequireRole(admin), orderHandler.Create)
	orders.Get("/", RequireRole(admin), orderHandler.ListAll)
	orders.Get("/manager", RequireRole(manager), orderHandler.ListForManager)
	orders.Get("/employee", RequireRole(employee), orderHandler.ListForEmployee)
	orders.Put("/:id/assign-manager", RequireRole(admin, manager), orderHandler.AssignManager)
	orders.Put("/:id/assign-employee", RequireRole(manager), orderHandler.AssignEmployee)
	orders.Put("/:id/assign-employees", RequireRole(manager), orderHandler.AssignEmployees)
	orders.Put("/:id/status", RequireRole(manager, employee), orderHandler.SetStatus)
	orders.Get("/:id/report", RequireRole(admin, manager), orderHandler.Report)

	// Departamentos (protegido; creación solo admin)
	departments := protected.Group("/departments")
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC)
	departments.Get("/", departmentHandler.List)
	departments.Post("/", RequireRole(admin), departmentHandler.Create)

	// Empleados (protegido; borrado solo admin)
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.List)
	employees.Delete("/:id", RequireRole(admin), employeeHandler.Delete)

	// Dashboard (protegido por rol)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", RequireRole(admin), dashboardHandler.AdminSummary)
	dashboard.Get("/manager-summary", RequireRole(manager), dashboardHandler.ManagerSummary)
}
