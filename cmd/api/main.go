package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fabrica-erp/fabrica-api/internal/application/auth"
	"github.com/fabrica-erp/fabrica-api/internal/application/usecase"
	infrapdf "github.com/fabrica-erp/fabrica-api/internal/infrastructure/pdf"
	"github.com/fabrica-erp/fabrica-api/internal/infrastructure/postgres"
	"github.com/fabrica-erp/fabrica-api/internal/infrastructure/realtime"
	httpRouter "github.com/fabrica-erp/fabrica-api/internal/interfaces/http"
	"github.com/fabrica-erp/fabrica-api/pkg/config"
	"github.com/fabrica-erp/fabrica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	departmentRepo := postgres.NewDepartmentRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	workOrderRepo := postgres.NewWorkOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	hub := realtime.NewHub(log)

	authUC := auth.NewAuthUseCase(employeeRepo, departmentRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	workOrderUC := usecase.NewWorkOrderUseCase(workOrderRepo, employeeRepo, departmentRepo, txRunner, hub)
	departmentUC := usecase.NewDepartmentUseCase(departmentRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo, employeeRepo, departmentRepo)

	// PDF: ficha imprimible de la orden de trabajo
	pdfGenerator := infrapdf.NewMarotoWorkOrderGenerator()
	reportUC := usecase.NewReportUseCase(workOrderUC, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		WorkOrderUC:  workOrderUC,
		ReportUC:     reportUC,
		DepartmentUC: departmentUC,
		EmployeeUC:   employeeUC,
		DashboardUC:  dashboardUC,
		Hub:          hub,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
	log.Info().Msg("servidor detenido")
}
