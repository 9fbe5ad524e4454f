package app

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	config "github.com/hsm-textlab/workbench/internal/cfg"
	v1Http "github.com/hsm-textlab/workbench/internal/delivery/v1/http"
	"github.com/hsm-textlab/workbench/internal/infrastructure/kafka"
	minioInfra "github.com/hsm-textlab/workbench/internal/infrastructure/minio"
	"github.com/hsm-textlab/workbench/internal/infrastructure/textlab"
	s3Repo "github.com/hsm-textlab/workbench/internal/repository/minio"
	"github.com/hsm-textlab/workbench/internal/repository/pgdb"
	pgdbConv "github.com/hsm-textlab/workbench/internal/repository/pgdb/converter"
	"github.com/hsm-textlab/workbench/internal/repository/redis"
	redisConv "github.com/hsm-textlab/workbench/internal/repository/redis/converter"
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/hsm-textlab/workbench/pkg/clients"
	"github.com/hsm-textlab/workbench/pkg/closer"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/hsm-textlab/workbench/pkg/postgres"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout = 10 * time.Second
	initTimeout     = 10 * time.Second
	topicTimeout    = 5 * time.Second
)

// App - консоль textlab со всеми подключенными хранилищами.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer
	server *v1Http.Server
}

// NewApp подключает включенные в конфигурации хранилища и собирает HTTP-консоль.
// Выключенные хранилища заменяются пустыми реализациями.
func NewApp(ctx context.Context, cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.New(0),
	}

	initCtx, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	cacheRepo, err := a.initPlotCache(initCtx)
	if err != nil {
		return nil, a.abort(err)
	}
	journal, err := a.initLabelJournal(initCtx)
	if err != nil {
		return nil, a.abort(err)
	}
	exporter, err := a.initPlotExporter(initCtx)
	if err != nil {
		return nil, a.abort(err)
	}
	events := a.initEventPublisher(initCtx)

	gateway := NewGateway(cfg, logger)
	filterUC := usecase.NewFilterUC(gateway, logger)
	clustererUC := usecase.NewClustererUC(
		gateway,
		cacheRepo,
		journal,
		exporter,
		events,
		logger,
		cfg.Backend.DefaultSampleSize,
		cfg.Backend.DefaultMethod,
	)

	r := chi.NewRouter()
	v1Http.NewRouter(r, logger).Init(filterUC, clustererUC)
	a.server = v1Http.NewServer(r, cfg.Http, shutdownTimeout)

	return a, nil
}

// NewGateway создает клиент бэкенда textlab по настройкам.
func NewGateway(cfg *config.Config, logger logger.Logger) *textlab.Gateway {
	return textlab.NewGateway(cfg.Backend.BaseURL, nil, cfg.Backend.Timeout, logger)
}

// Run обслуживает консоль, пока не отменен ctx или сервер не упал, затем закрывает ресурсы.
func (a *App) Run(ctx context.Context) error {
	ln, err := a.server.Listen()
	if err != nil {
		a.closeResources()
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.logger.Infof("HTTP console started on %s, backend %s", a.server.Addr(), a.cfg.Backend.BaseURL)

	appErr := a.server.Serve(ctx, ln)
	if appErr != nil {
		a.logger.Errorf(appErr, "HTTP server fatal error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	a.closeResources()
	a.logger.Infof("Application shutdown complete")
	return appErr
}

func (a *App) closeResources() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("resource shutdown: %v", err)
	}
}

func (a *App) initPlotCache(ctx context.Context) (usecase.PlotCacheRepository, error) {
	if !a.cfg.Redis.Enabled() {
		a.logger.Infof("redis is not configured, plot cache disabled")
		return usecase.NopPlotCache{}, nil
	}

	redisClient, err := clients.ConnectRedis(ctx, a.cfg.Redis)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })
	a.logger.Debugf("plot cache connected to redis %s", redisClient.Addr())

	return redis.NewPlotCacheRepo(redisClient, redisConv.PlotSessionConverter{}, a.cfg.Redis, a.logger), nil
}

func (a *App) initLabelJournal(ctx context.Context) (usecase.LabelJournalRepository, error) {
	if !a.cfg.Db.Enabled() {
		a.logger.Infof("postgres is not configured, label journal disabled")
		return usecase.NopLabelJournal{}, nil
	}

	db, err := postgres.Connect(ctx, a.cfg.Db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.AddFunc("postgres", db.Close)

	if err := db.RunMigrations(a.logger); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return pgdb.NewLabelJournalRepo(db.Pool, pgdbConv.LabelSubmissionConverter{}), nil
}

func (a *App) initPlotExporter(ctx context.Context) (usecase.PlotExporter, error) {
	if !a.cfg.Minio.Enabled() {
		a.logger.Infof("minio is not configured, plot export disabled")
		return usecase.NopPlotExporter{}, nil
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return minioInfra.NewPlotExporter(s3Repo.NewPlotRepo(minioClient), a.cfg.Minio.BucketName, a.logger), nil
}

func (a *App) initEventPublisher(ctx context.Context) usecase.LabelEventPublisher {
	if !a.cfg.Kafka.Enabled() {
		a.logger.Infof("kafka is not configured, label events disabled")
		return usecase.NopEventPublisher{}
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka", func(context.Context) error { return producer.Close() })
	topicCtx, cancel := context.WithTimeout(ctx, topicTimeout)
	defer cancel()
	if err := producer.EnsureTopic(topicCtx); err != nil {
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	return producer
}

// abort закрывает уже подключенные ресурсы, если сборка приложения не удалась.
func (a *App) abort(err error) error {
	a.closeResources()
	return err
}
