// seed prepara una base nueva: aplica migraciones, crea el usuario administrador,
// proveedores de ejemplo y, opcionalmente, importa productos desde un CSV.
//
// Uso: go run ./cmd/seed -email admin@empresa.com -password secreto [-products productos.csv]
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/security"
	"github.com/jhoicas/Estoque-api/pkg/config"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

var sampleSuppliers = []dto.SupplierRequest{
	{Name: "Distribuidora Central", ContactName: "Marta Gómez", ContactEmail: "ventas@central.example", ContactPhone: "+57 (1) 555-0101"},
	{Name: "Suministros del Norte", ContactName: "Luis Pérez", ContactEmail: "pedidos@norte.example", ContactPhone: "+57 (4) 555-0202"},
	{Name: "Importadora Andina", ContactName: "Ana Ruiz", ContactEmail: "contacto@andina.example", ContactPhone: "555-0303"},
}

func main() {
	name := flag.String("name", "Administrador", "nombre del usuario administrador")
	email := flag.String("email", "admin@estoque.local", "email del usuario administrador")
	password := flag.String("password", "", "contraseña del administrador (obligatoria)")
	productsCSV := flag.String("products", "", "CSV de productos name;description;price;unit;initial_stock")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if *password == "" {
		log.Fatal().Msg("-password es obligatorio")
	}

	ctx := context.Background()
	version, err := postgres.Migrate(ctx, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Uint("version", version).Msg("esquema al día")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), security.NewBcryptHasher(0), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	supplierUC := usecase.NewSupplierUseCase(postgres.NewSupplierRepository(pool))
	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))

	// 1. Administrador
	_, err = authUC.RegisterUser(ctx, dto.RegisterRequest{Name: *name, Email: *email, Password: *password})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", *email).Msg("administrador ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	default:
		log.Info().Str("email", *email).Msg("administrador creado")
	}

	// 2. Proveedores de ejemplo, solo en una base vacía
	existing, err := supplierUC.List(ctx, "", dto.PageRequest{Limit: 1})
	if err != nil {
		log.Fatal().Err(err).Msg("listar proveedores")
	}
	if existing.Page.Total == 0 {
		for _, s := range sampleSuppliers {
			if _, err := supplierUC.Create(ctx, s); err != nil {
				log.Fatal().Err(err).Str("supplier", s.Name).Msg("crear proveedor")
			}
		}
		log.Info().Int("count", len(sampleSuppliers)).Msg("proveedores de ejemplo creados")
	}

	// 3. Productos desde CSV
	if *productsCSV == "" {
		return
	}
	f, err := os.Open(*productsCSV)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()
	rows, err := parseProductsCSV(f)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	created, skipped := 0, 0
	for _, row := range rows {
		dup, err := productExists(ctx, productUC, row.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("buscar producto")
		}
		if dup {
			skipped++
			continue
		}
		if _, err := productUC.Create(ctx, row); err != nil {
			log.Warn().Err(err).Str("product", row.Name).Msg("producto omitido")
			skipped++
			continue
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("importación de productos terminada")
}

// productExists busca un producto con el mismo nombre (sin distinguir mayúsculas).
func productExists(ctx context.Context, uc *usecase.ProductUseCase, name string) (bool, error) {
	res, err := uc.List(ctx, name, dto.PageRequest{Limit: 100})
	if err != nil {
		return false, err
	}
	for _, p := range res.Items {
		if strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
