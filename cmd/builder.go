package cmd

import (
	"context"
	"fmt"
	"net/http"

	"meusmedicamentos/api"
	apicategoria "meusmedicamentos/api/categoria"
	"meusmedicamentos/api/health"
	apimedicamento "meusmedicamentos/api/medicamento"
	catapp "meusmedicamentos/application/categoria"
	medapp "meusmedicamentos/application/medicamento"
	"meusmedicamentos/config"
	"meusmedicamentos/domain/categoria"
	"meusmedicamentos/domain/medicamento"
	"meusmedicamentos/domain/shared"
	"meusmedicamentos/infrastructure/persistence/mocks"
	"meusmedicamentos/infrastructure/persistence/mysql"
	"meusmedicamentos/infrastructure/persistence/retry"
	"meusmedicamentos/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg          *config.Config
	controllers  []api.ControllerRegister
	middlewares  []api.MiddlewareRegister
	customRoutes []api.Route
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

func (b *AppBuilder) WithController(c api.ControllerRegister) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

func (b *AppBuilder) WithMiddleware(m api.MiddlewareRegister) *AppBuilder {
	b.middlewares = append(b.middlewares, m)
	return b
}

func (b *AppBuilder) WithRoute(method, path string, handler gin.HandlerFunc) *AppBuilder {
	b.customRoutes = append(b.customRoutes, api.Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
	return b
}

// Services is everything the HTTP layer and the worker need from the store.
type Services struct {
	Medicamentos *medapp.Service
	Categorias   *catapp.Service
	DB           *gorm.DB
}

// NewServices wires repositories and units of work for cfg.Database.Type.
// The mock store keeps everything in memory and dispatches events in-process.
func NewServices(cfg *config.Config) (*Services, error) {
	var (
		meds medicamento.Repository
		cats categoria.Repository
		uows shared.UnitOfWorkFactory
		db   *gorm.DB
	)

	switch cfg.Database.Type {
	case StorageMock, "":
		logger.Info("Using in-memory persistence layer")
		memMeds := mocks.NewMedicamentoRepository()
		meds = memMeds
		cats = mocks.NewCategoriaRepository(memMeds)
		uows = mocks.NewUnitOfWorkFactory(loggingEventBus())
	default:
		var err error
		db, err = OpenDatabase(cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Using SQL persistence layer", zap.String("type", cfg.Database.Type))
		meds = mysql.NewMedicamentoRepository(db)
		cats = mysql.NewCategoriaRepository(db)
		uows = mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg))
	}

	return &Services{
		Medicamentos: medapp.NewService(meds, cats, uows, logger.Named("medicamentos"), medapp.Options{
			QuantidadeMinimaPadrao: cfg.Estoque.QuantidadeMinimaPadrao,
		}),
		Categorias: catapp.NewService(cats, meds, uows, logger.Named("categorias")),
		DB:         db,
	}, nil
}

func loggingEventBus() *shared.EventBus {
	bus := shared.NewEventBus()
	log := logger.Named("events")
	_ = bus.Subscribe(shared.AllEvents, shared.NewFuncHandler("log", func(_ context.Context, e shared.DomainEvent) error {
		log.Info("Domain event",
			zap.String("event_id", e.EventID()),
			zap.String("event_name", e.EventName()),
			zap.String("aggregate_id", e.GetAggregateID()))
		return nil
	}))
	return bus
}

func (b *AppBuilder) Build() (*App, error) {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("storage", b.cfg.Database.Type))

	services, err := NewServices(b.cfg)
	if err != nil {
		return nil, err
	}

	var pinger health.Pinger
	if services.DB != nil {
		sqlDB, err := services.DB.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		pinger = sqlDB
	}

	controllers := append([]api.ControllerRegister{
		health.NewController(b.cfg, pinger),
		apimedicamento.NewController(services.Medicamentos),
		apicategoria.NewController(services.Categorias),
	}, b.controllers...)

	router := api.NewRouter(b.cfg, controllers, b.middlewares, b.customRoutes)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     services.DB,
	}, nil
}
