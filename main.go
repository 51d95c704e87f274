package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"
	"catalog/pkg/logger"
	"catalog/pkg/rabbitmq"
)

// App is the HTTP application together with the resources it owns.
type App struct {
	Fiber   *fiber.App
	cfg     *config.Config
	events  *rabbitmq.Client
	closers []func() error
}

// NewApp wires storage, services, handlers and routes for cfg.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	productRepo, adminRepo, err := a.openStores()
	if err != nil {
		a.Close()
		return nil, err
	}

	// --- Events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Warn().Err(err).Msg("product events disabled: RabbitMQ is unreachable")
		} else {
			a.events = client
			a.closers = append(a.closers, client.Close)
			publisher = client
			if err := client.ConsumeProductEvents(auditProductEvent); err != nil {
				logger.Warn().Err(err).Msg("failed to start product event consumer")
			}
		}
	}

	// --- Services ---
	productService := services.NewProductService(productRepo, validation.New(cfg.SellerEmailDomains), publisher)
	authService := services.NewAuthService(adminRepo, cfg.JWTSecret)

	var guards []fiber.Handler
	if cfg.AuthEnabled() {
		if err := authService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to provision admin: %w", err)
		}
		guards = append(guards, middleware.AuthRequired(authService))
	} else {
		logger.Warn().Msg("ADMIN_PASSWORD is not set: catalog mutations are open to everyone")
	}

	// --- Fiber ---
	app := fiber.New(fiber.Config{AppName: "catalog"})
	if logger.ParseEnvironment(cfg.Env) != logger.Testing {
		app.Use(fiberlogger.New())
	}

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1, guards...)

	app.Get("/health", a.health)

	a.Fiber = app
	return a, nil
}

func (a *App) openStores() (repositories.ProductRepository, repositories.AdminRepository, error) {
	switch a.cfg.StoreDriver {
	case config.DriverJSON:
		repo, err := repositories.NewJSONProductRepository(a.cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return repo, repositories.NewMemoryAdminRepository(), nil
	case config.DriverMemory:
		return repositories.NewMemoryProductRepository(), repositories.NewMemoryAdminRepository(), nil
	case config.DriverSQLite, config.DriverPostgres:
		db, err := repositories.OpenDatabase(a.cfg.StoreDriver, a.cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to access database handle: %w", err)
		}
		a.closers = append(a.closers, sqlDB.Close)
		return repositories.NewGORMProductRepository(db), repositories.NewGORMAdminRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", a.cfg.StoreDriver)
	}
}

func (a *App) health(c *fiber.Ctx) error {
	body := fiber.Map{
		"status": "ok",
		"store":  a.cfg.StoreDriver,
		"events": a.events != nil,
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if a.cfg.StoreDriver == config.DriverJSON {
		body["data_path"] = a.cfg.DataFile
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// Close releases the store and broker connections, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// auditProductEvent logs every product event seen on the audit queue.
func auditProductEvent(msg amqp.Delivery) error {
	logger.Info().
		Str("routing_key", msg.RoutingKey).
		Uint64("delivery_tag", msg.DeliveryTag).
		Bytes("event", msg.Body).
		Msg("product event")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(logger.ParseEnvironment(cfg.Env))

	a, err := NewApp(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start catalog")
	}
	defer a.Close()

	logger.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("starting server")

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := a.Fiber.Listen(cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logger.Info().Msg("shutting down server")

	if err := a.Fiber.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("error during Fiber shutdown")
	}

	logger.Info().Msg("server gracefully stopped")
}
