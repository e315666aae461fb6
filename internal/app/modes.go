package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yuval-krn/yieldcurve/internal/ingest"
	"github.com/yuval-krn/yieldcurve/internal/server"
	"github.com/yuval-krn/yieldcurve/internal/server/handler"
	"github.com/yuval-krn/yieldcurve/internal/service"
)

// ServeMode runs one ingestion pass and then starts the HTTP API. The
// server does not begin listening until ingestion succeeds, so a
// reachable server always has a populated store.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode")

	if err := a.runIngestion(ctx, deps); err != nil {
		return fmt.Errorf("serve mode: %w", err)
	}

	var cache service.CurveCache
	if deps.CurveCache != nil {
		cache = deps.CurveCache
	}
	curveSvc := service.NewCurveService(deps.CurveStore, cache, a.logger)
	orderSvc := service.NewOrderService(deps.OrderStore, deps.CurveStore, a.logger)

	srv := server.NewServer(
		server.Config{
			Port:        a.cfg.Server.Port,
			CORSOrigins: a.cfg.Server.CORSOrigins,
		},
		server.Handlers{
			Health: handler.NewHealthHandler(a.logger),
			Curves: handler.NewCurveHandler(curveSvc, a.logger),
			Orders: handler.NewOrderHandler(orderSvc, a.logger),
		},
		a.logger,
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	return g.Wait()
}

// IngestMode runs one ingestion pass and exits. Useful for cron-style
// refreshes against a long-lived database.
func (a *App) IngestMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting ingest mode")

	if err := a.runIngestion(ctx, deps); err != nil {
		return fmt.Errorf("ingest mode: %w", err)
	}
	return nil
}

// runIngestion builds and runs the ingestion coordinator with whatever
// optional dependencies are wired.
func (a *App) runIngestion(ctx context.Context, deps *Dependencies) error {
	coord := ingest.New(deps.Fetcher, deps.CurveStore, a.logger)
	if deps.CurveCache != nil {
		coord = coord.WithCache(deps.CurveCache)
	}
	if deps.Snapshots != nil {
		coord = coord.WithSnapshots(deps.Snapshots)
	}
	return coord.Run(ctx)
}
