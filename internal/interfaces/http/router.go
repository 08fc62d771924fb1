package http

import (
	"path/filepath"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/backoffice-api/internal/application/analytics"
	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/billing"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *billing.CustomerUseCase
	InvoiceUC   *billing.InvoiceUseCase
	InvoicePDF  *billing.PDFUseCase
	SettingsUC  *usecase.SettingsUseCase
	DashboardUC *appanalytics.DashboardUseCase
	StockUC     *inventory.StockUseCase
	Replenish   *inventory.ReplenishmentUseCase

	Codec   *jwt.Codec
	Cookie  SessionCookie
	Metrics *Metrics
	// Registry origen de /metrics; nil desactiva el endpoint.
	Registry *prometheus.Registry
	Log      *logger.Logger
}

// AppOptions opciones del servidor Fiber.
type AppOptions struct {
	Name        string
	StaticDir   string // bundle del front-end; vacío = solo API
	SwaggerFile string // vacío = sin /docs
}

// pagePrefixes rutas del front-end servidas con index.html.
var pagePrefixes = []string{"/login", "/dashboard", "/products", "/customers", "/invoices", "/settings"}

// NewApp construye la aplicación Fiber con middlewares, gate y rutas.
func NewApp(opts AppOptions, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       opts.Name,
		CaseSensitive: true,
		ReadTimeout:   10 * time.Second,
		WriteTimeout:  10 * time.Second,
		IdleTimeout:   60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}

	// Swagger UI: http://localhost:<port>/docs
	if opts.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: opts.SwaggerFile,
			Path:     "docs",
			Title:    "Backoffice API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})
	if deps.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	app.Use(AccessGate(deps.Codec, deps.Cookie.Name, DefaultGateRules()))
	Router(app, deps)

	if opts.StaticDir != "" {
		index := filepath.Join(opts.StaticDir, "index.html")
		for _, p := range pagePrefixes {
			app.Get(p, sendIndex(index))
			app.Get(p+"/*", sendIndex(index))
		}
		app.Static("/", opts.StaticDir)
	}
	return app
}

func sendIndex(index string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendFile(index)
	}
}

// Router registra las rutas de la API. El control de sesión lo hace AccessGate.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie, deps.Log)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authHandler.Me)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	api.Get("/dashboard/stats", dashboardHandler.GetStats)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/low-stock", productHandler.ListLowStock)

	// Stock movements y reposición
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.Replenish, deps.Log)
	products.Get("/replenishment", inventoryHandler.GetReplenishmentList)
	products.Get("/:id/movements", inventoryHandler.ListMovements)
	products.Post("/:id/movements", inventoryHandler.RegisterMovement)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Log)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Post("/batch", customerHandler.CreateBatch)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF, deps.Log)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Settings
	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.Log)
	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Update)
}
