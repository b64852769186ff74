package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/caja-api/internal/application/auth"
	"github.com/jhoicas/caja-api/internal/application/catalog"
	"github.com/jhoicas/caja-api/internal/application/inventory"
	"github.com/jhoicas/caja-api/internal/application/sale"
	"github.com/jhoicas/caja-api/internal/application/till"
	"github.com/jhoicas/caja-api/internal/domain/repository"
	"github.com/jhoicas/caja-api/internal/infrastructure/cache"
	"github.com/jhoicas/caja-api/internal/infrastructure/memory"
	"github.com/jhoicas/caja-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/caja-api/internal/interfaces/http"
	"github.com/jhoicas/caja-api/pkg/config"
	"github.com/jhoicas/caja-api/pkg/logger"
)

// backend agrupa repositorios y runners transaccionales del almacenamiento elegido.
type backend struct {
	products  repository.ProductRepository
	stock     repository.StockRepository
	sales     repository.SaleRepository
	movements repository.InventoryMovementRepository
	users     repository.UserRepository
	saleTx    sale.TxRunner
	invTx     inventory.TxRunner
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
		Str("store", cfg.App.StoreBackend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be := openBackend(ctx, cfg, log)
	defer be.close()

	// Caché de códigos de barras: Redis si está configurado, si no ninguna.
	var barcodeCache catalog.BarcodeCache = cache.NoopBarcodeCache{}
	if cfg.Redis.Enabled() {
		rc := cache.NewRedisBarcodeCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se sigue sin caché")
		}
		defer rc.Close()
		barcodeCache = rc
	}

	authUC := auth.NewAuthUseCase(be.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if created, err := authUC.SeedAdmin(ctx, cfg.App.SeedAdminPassword); err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin inicial")
	} else if created {
		log.Info().Msg("usuario admin inicial creado")
	}

	saleOpts := []sale.Option{sale.WithTimeout(cfg.Sale.CommitTimeout)}
	receiveUC := inventory.NewReceiveStockUseCase(be.invTx, log)
	lookup := catalog.NewLookupService(be.products, barcodeCache, cfg.Redis.TTL, log)
	productUC := catalog.NewProductUseCase(be.products, lookup, receiveUC)
	stockQuery := inventory.NewStockQuery(be.stock, be.products, be.movements)
	committer := sale.NewCommitSaleUseCase(be.saleTx, log, saleOpts...)
	reverseUC := sale.NewReverseSaleUseCase(be.saleTx, log, saleOpts...)
	saleQueryUC := sale.NewQueryUseCase(be.sales)
	tillSvc := till.New(lookup, committer, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Sale.CommitTimeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.StoreBackend})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		ReceiveUC:   receiveUC,
		StockQuery:  stockQuery,
		Till:        tillSvc,
		SaleQueryUC: saleQueryUC,
		ReverseUC:   reverseUC,
		JWTSecret:   cfg.JWT.Secret,
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

	// Las ventas en curso terminan antes de cerrar el pool.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Sale.CommitTimeout+5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) *backend {
	if cfg.App.StoreBackend == config.StoreBackendMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		runner := memory.NewTxRunner(store)
		return &backend{
			products:  store.Products(),
			stock:     store.Stock(),
			sales:     store.Sales(),
			movements: store.Movements(),
			users:     store.Users(),
			saleTx:    runner,
			invTx:     runner,
			close:     func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}
	runner := postgres.NewTxRunner(pool, cfg.DB.StatementTimeout)
	return &backend{
		products:  postgres.NewProductRepository(pool),
		stock:     postgres.NewStockRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		movements: postgres.NewInventoryMovementRepository(pool),
		users:     postgres.NewUserRepository(pool),
		saleTx:    runner,
		invTx:     runner,
		close:     pool.Close,
	}
}
