package http

import (
	"errors"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/lacteos-api/internal/application/analytics"
	"github.com/jhoicas/lacteos-api/internal/application/auth"
	"github.com/jhoicas/lacteos-api/internal/application/batches"
	"github.com/jhoicas/lacteos-api/internal/application/billing"
	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/application/herd"
	"github.com/jhoicas/lacteos-api/internal/application/orders"
	"github.com/jhoicas/lacteos-api/internal/application/usecase"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/realtime"
	"github.com/jhoicas/lacteos-api/pkg/config"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	ClientUC    *usecase.ClientUseCase
	OrdersUC    *orders.UseCase
	BatchesUC   *batches.UseCase
	InvoiceUC   *billing.InvoiceUseCase
	DocumentUC  *billing.DocumentUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportsUC   *appanalytics.ReportsUseCase
	HerdUC      *herd.UseCase // nil si el módulo de hato está deshabilitado
	HerdModule  config.HerdDBConfig
	Hub         *realtime.Hub // nil deshabilita /ws/orders
	JWTSecret   string
}

// AppOptions parámetros de la aplicación fiber.
type AppOptions struct {
	Name       string
	HTTP       config.HTTPConfig
	SwaggerDoc string // ruta a swagger.json; vacío = sin /docs
	Logger     *logger.Logger
}

// NewApp crea la app fiber con el manejo de errores y los middlewares globales.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(opts.Logger))
	origin := opts.HTTP.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + HeaderIdempotencyKey,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	if opts.HTTP.RateLimitMax > 0 {
		window := opts.HTTP.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		app.Use(limiter.New(limiter.Config{
			Max:        opts.HTTP.RateLimitMax,
			Expiration: window,
			LimitReached: func(c *fiber.Ctx) error {
				return fail(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "demasiadas peticiones")
			},
		}))
	}

	// Swagger UI: http://localhost:<port>/docs
	if opts.SwaggerDoc != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: opts.SwaggerDoc,
			Path:     "docs",
			Title:    "Lácteos API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})
	return app
}

// errorHandler respuesta uniforme para errores que llegan a fiber (404 de ruta, 405, panics recuperados).
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest:
			code = "BAD_REQUEST"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		}
		if fe.Code >= fiber.StatusInternalServerError {
			requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")
	adminOnly := RequireRole(entity.RoleAdmin)
	backOffice := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/", backOffice, userHandler.List)
	users.Get("/:id", backOffice, userHandler.GetByID)
	users.Post("/", adminOnly, userHandler.Create)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/stock", productHandler.AdjustStock)
	products.Delete("/:id", backOffice, productHandler.Delete)

	clientHandler := NewClientHandler(deps.ClientUC, deps.OrdersUC)
	clients := protected.Group("/clients")
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Get("/:id/orders", clientHandler.Orders)
	clients.Post("/", clientHandler.Create)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", backOffice, clientHandler.Delete)

	orderHandler := NewOrderHandler(deps.OrdersUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/tracking", orderHandler.Tracking)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Patch("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Patch("/:id/assign-driver", orderHandler.AssignDriver)
	ordersGroup.Patch("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Delete("/:id", adminOnly, orderHandler.Delete)

	batchHandler := NewBatchHandler(deps.BatchesUC)
	batchesGroup := protected.Group("/batches")
	batchesGroup.Post("/", batchHandler.Create)
	batchesGroup.Get("/", batchHandler.List)
	batchesGroup.Get("/:id", batchHandler.GetByID)
	batchesGroup.Put("/:id", batchHandler.Update)
	batchesGroup.Patch("/:id/status", batchHandler.UpdateStatus)
	batchesGroup.Patch("/:id/quality-check", batchHandler.QualityCheck)

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC)
	invoices := protected.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Post("/:id/payments", invoiceHandler.AddPayment)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/xml", invoiceHandler.ExportXML)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportsUC)
	protected.Get("/dashboard/stats", dashboardHandler.Stats)
	reports := protected.Group("/reports", backOffice)
	reports.Get("/sales", dashboardHandler.Sales)
	reports.Get("/sales/export", dashboardHandler.ExportSales)
	reports.Get("/products", dashboardHandler.TopProducts)
	reports.Get("/clients", dashboardHandler.TopClients)

	// Hato: siempre montado; 503 si HERD_DB_DSN no está configurado.
	herdHandler := NewHerdHandler(deps.HerdUC)
	herdGroup := protected.Group("/herd", RequireModule("herd", deps.HerdModule))
	herdGroup.Get("/cows", herdHandler.ListCows)
	herdGroup.Post("/cows", herdHandler.CreateCow)
	herdGroup.Get("/cows/:id", herdHandler.GetCow)
	herdGroup.Put("/cows/:id", herdHandler.UpdateCow)
	herdGroup.Delete("/cows/:id", backOffice, herdHandler.DeleteCow)
	herdGroup.Get("/milk", herdHandler.ListMilkRecords)
	herdGroup.Post("/milk", herdHandler.CreateMilkRecord)
	herdGroup.Get("/milk/summary", herdHandler.MilkSummary)
	herdGroup.Get("/health", herdHandler.ListHealthRecords)
	herdGroup.Post("/health", herdHandler.CreateHealthRecord)
	herdGroup.Put("/health/:id", herdHandler.UpdateHealthRecord)
	herdGroup.Get("/feed", herdHandler.ListFeedRecords)
	herdGroup.Post("/feed", herdHandler.CreateFeedRecord)

	if deps.Hub != nil {
		app.Get("/ws/orders", WSUpgrade(deps.JWTSecret), OrdersWS(deps.Hub))
	}
}
