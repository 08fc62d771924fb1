// seed pobla una base recién migrada: usuario administrador, configuración por defecto,
// productos y clientes de ejemplo. Es idempotente: lo que ya existe se omite.
//
// Uso: go run ./cmd/seed [ruta/datos.json]
// Sin argumento usa los datos de ejemplo incluidos.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/billing"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/jhoicas/backoffice-api/pkg/logger"
	"github.com/jhoicas/backoffice-api/pkg/password"
)

// seedData formato del archivo opcional de datos.
type seedData struct {
	Products  []dto.CreateProductRequest `json:"products"`
	Customers []dto.CustomerRequest      `json:"customers"`
}

var sampleData = seedData{
	Products: []dto.CreateProductRequest{
		{SKU: "TOR-M6", Name: "Tornillo M6", Category: "Ferretería", PurchasePrice: decimal.RequireFromString("0.05"), SalePrice: decimal.RequireFromString("0.12"), CurrentStock: 500, MinStock: 100, Location: "A-01"},
		{SKU: "TUE-M6", Name: "Tuerca M6", Category: "Ferretería", PurchasePrice: decimal.RequireFromString("0.03"), SalePrice: decimal.RequireFromString("0.08"), CurrentStock: 40, MinStock: 100, Location: "A-02"},
		{SKU: "CAB-USB", Name: "Cable USB-C 1m", Category: "Electrónica", PurchasePrice: decimal.RequireFromString("2.10"), SalePrice: decimal.RequireFromString("6.90"), CurrentStock: 25, MinStock: 10, Location: "B-04"},
		{Name: "Hora de instalación", Category: "Servicios", SalePrice: decimal.RequireFromString("45.00")},
	},
	Customers: []dto.CustomerRequest{
		{Name: "María López", Company: "López Reformas", Address: "Calle Mayor 12", PostalCode: "28013", City: "Madrid", Country: "España", Email: "maria@lopezreformas.example"},
		{Name: "Jonas Weber", Company: "Weber GmbH", Address: "Hauptstraße 5", PostalCode: "10115", City: "Berlin", Country: "Deutschland", Email: "jonas@weber.example", TaxID: "DE123456789"},
		{Name: "Cliente de mostrador"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	data := sampleData
	if len(os.Args) > 1 {
		if data, err = readSeedFile(os.Args[1]); err != nil {
			log.Fatal().Err(err).Str("file", os.Args[1]).Msg("leer datos")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	codec, err := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	if err != nil {
		log.Fatal().Err(err).Msg("codec de sesión")
	}
	validate := validation.New()

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), password.NewHasher(cfg.Session.BcryptCost), codec, validate, nil)
	created, err := authUC.EnsureUser(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminName, entity.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("usuario administrador")
	}
	log.Info().Str("email", cfg.Seed.AdminEmail).Bool("created", created).Msg("usuario administrador")

	if err := usecase.NewSettingsUseCase(postgres.NewSettingsRepository(pool), validate).EnsureDefault(ctx); err != nil {
		log.Fatal().Err(err).Msg("configuración por defecto")
	}

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool), postgres.NewInvoiceRepository(pool), validate)
	var products, skipped int
	for _, p := range data.Products {
		if _, err := productUC.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicateSKU) || errors.Is(err, domain.ErrValidation) {
				skipped++
				log.Warn().Str("sku", p.SKU).Str("name", p.Name).Err(err).Msg("producto omitido")
				continue
			}
			log.Fatal().Err(err).Str("name", p.Name).Msg("crear producto")
		}
		products++
	}
	log.Info().Int("created", products).Int("skipped", skipped).Msg("productos")

	customerRepo := postgres.NewCustomerRepository(pool)
	existing, err := customerRepo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar clientes")
	}
	// los clientes no tienen clave natural: solo se siembran sobre una tabla vacía
	if len(existing) > 0 {
		log.Info().Int("existing", len(existing)).Msg("clientes ya sembrados, se omiten")
		return
	}
	res, err := billing.NewCustomerUseCase(customerRepo, validate).CreateBatch(ctx, data.Customers)
	if err != nil {
		log.Fatal().Err(err).Msg("clientes")
	}
	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("clientes")
}

func readSeedFile(path string) (seedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return seedData{}, err
	}
	var d seedData
	if err := json.Unmarshal(raw, &d); err != nil {
		return seedData{}, fmt.Errorf("decodificar %s: %w", path, err)
	}
	return d, nil
}
