package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/config"
	service "github.com/Silvador/romanian-forest-auction-sub000/internal/domain/service/auction"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/infrastructure/notifier"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/infrastructure/persistence"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/server"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/worker"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/application/connectors"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/application/modules"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/contextx"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/logx"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/middlewarex"
)

const appName = "forest-auction-engine"

func Run(ctx context.Context, log *slog.Logger, version string) error {
	ctx = contextx.WithLogger(ctx, log)

	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	// 2. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("database connection OK")

	// 3. Redis (push channel + task queue)
	rd := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := rd.Client(ctx)
	defer rd.Close(ctx)

	// 4. Repositories + engine
	auctionRepo := persistence.NewAuctionRepository(db)
	bidRepo := persistence.NewBidRepository(db)
	publisher := notifier.NewRedisPublisher(redisClient)

	auctionService := service.NewAuctionService(auctionRepo, bidRepo, publisher).
		WithSoftClose(cfg.Auction.SoftCloseWindow, cfg.Auction.SoftCloseExtension).
		WithActivityWindow(cfg.Auction.ActivityWindow).
		WithCommitRetries(cfg.Auction.CommitRetries)

	g, ctx := errgroup.WithContext(ctx)

	// 5. HTTP adapter
	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, cfg.Server.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.Server.LogFieldMaxLen),
		middlewarex.Recovery,
	)
	server.NewServer(server.NewAuctionServer(auctionService)).RegisterRoutes(router)

	httpServer := &http.Server{ //nolint:exhaustruct
		Addr:    cfg.Server.ListenAddress,
		Handler: router,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	modules.HTTPServer{ShutdownTimeout: cfg.Server.ShutdownTimeout}.Run(ctx, g, httpServer)

	// 6. Probes + metrics
	modules.ProbeServer{
		Name:          appName,
		Version:       version,
		ListenAddress: cfg.Server.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.Server.MetricsListenAddress}.Run(ctx, g)

	// 7. Lifecycle worker + scheduler
	lifecycleWorker := worker.NewLifecycleWorker(auctionService)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqQueues{"default": 1},
		modules.AsynqHandler{Pattern: worker.TypeLifecycleTick, Handle: lifecycleWorker.HandleLifecycleTick},
	)

	modules.AsynqScheduler{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqScheduleEntry{
			Cronspec: "@every " + cfg.Auction.TickInterval.String(),
			Task:     worker.NewLifecycleTickTask(),
		},
	)

	log.Info("application started", "app", appName, "version", version)

	return g.Wait() //nolint:wrapcheck
}
