package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	appanalytics "github.com/jhoicas/backoffice-api/internal/application/analytics"
	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/billing"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/jhoicas/backoffice-api/pkg/logger"
	"github.com/jhoicas/backoffice-api/pkg/password"
)

// repos repositorios del almacén elegido en APP_STORE.
type repos struct {
	users     repository.UserRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
	settings  repository.SettingsRepository
	dashboard repository.DashboardRepository
	movements repository.StockMovementRepository
	billingTx repository.BillingTxRunner
	stockTx   repository.StockTxRunner
	close     func()
}

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
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer r.close()

	codec, err := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	if err != nil {
		log.Fatal().Err(err).Msg("codec de sesión")
	}
	validate := validation.New()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := httpRouter.NewMetrics(reg)

	authUC := auth.NewAuthUseCase(r.users, password.NewHasher(cfg.Session.BcryptCost), codec, validate, metrics)
	settingsUC := usecase.NewSettingsUseCase(r.settings, validate)
	if err := settingsUC.EnsureDefault(ctx); err != nil {
		log.Fatal().Err(err).Msg("configuración por defecto")
	}
	if cfg.App.Store == "memory" {
		// sin seed externo: el admin de SEED_* permite entrar en modo demo
		if _, err := authUC.EnsureUser(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminName, entity.RoleAdmin); err != nil {
			log.Fatal().Err(err).Msg("usuario demo")
		}
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Locale, cfg.App.Currency)

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:        cfg.App.Name,
		StaticDir:   cfg.HTTP.StaticDir,
		SwaggerFile: swaggerFile(cfg.HTTP.SwaggerFile),
	}, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   usecase.NewProductUseCase(r.products, r.invoices, validate),
		CustomerUC:  billing.NewCustomerUseCase(r.customers, validate),
		InvoiceUC:   billing.NewInvoiceUseCase(r.billingTx, r.invoices, r.customers, r.products, validate),
		InvoicePDF:  billing.NewPDFUseCase(r.invoices, r.customers, r.settings, pdfGenerator),
		SettingsUC:  settingsUC,
		DashboardUC: appanalytics.NewDashboardUseCase(r.dashboard),
		StockUC:     inventory.NewStockUseCase(r.stockTx, r.products, r.movements, validate),
		Replenish:   inventory.NewReplenishmentUseCase(r.products),
		Codec:       codec,
		Cookie: httpRouter.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.App.IsProduction(),
			MaxAge: codec.TTL(),
		},
		Metrics:  metrics,
		Registry: reg,
		Log:      log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.App.Store == "memory" {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &repos{
			users:     s.Users(),
			products:  s.Products(),
			customers: s.Customers(),
			invoices:  s.Invoices(),
			settings:  s.Settings(),
			dashboard: s.Dashboard(),
			movements: s.StockMovements(),
			billingTx: s.TxRunner(),
			stockTx:   s.TxRunner(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &repos{
		users:     postgres.NewUserRepository(pool),
		products:  postgres.NewProductRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		invoices:  postgres.NewInvoiceRepository(pool),
		settings:  postgres.NewSettingsRepository(pool),
		dashboard: postgres.NewDashboardRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		billingTx: postgres.NewTxRunner(pool),
		stockTx:   postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

// swaggerFile desactiva /docs si el archivo no está junto al binario.
func swaggerFile(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
