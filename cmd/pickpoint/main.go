// @title Pickpoint API
// @version 1.0
// @description Pickup point orders, interns and commission ledger.
// @BasePath /api/v1
// @securityDefinitions.apikey CuratorToken
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pickpoint/internal/auth"
	"pickpoint/internal/commission"
	"pickpoint/internal/config"
	"pickpoint/internal/events"
	httpapi "pickpoint/internal/http"
	"pickpoint/internal/logger"
	"pickpoint/internal/metrics"
	"pickpoint/internal/repository"
	"pickpoint/internal/service"

	_ "pickpoint/docs"
)

func main() {
	configPath := flag.String("config", os.Getenv("PICKPOINT_CONFIG"), "path to yaml config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer zaplog.Sync()

	if err := run(cfg, zaplog); err != nil {
		zaplog.Fatal("pickpoint stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zaplog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := repository.OpenKV(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return err
	}
	defer kv.Close()

	store := repository.NewMemoryStore()
	ordersRepo := repository.NewMemoryOrders(store)
	internsRepo := repository.NewMemoryInterns(store)
	tx := repository.NewMemoryTx(store)

	persister := repository.NewPersister(kv, store)
	if err := persister.Load(ctx); err != nil {
		return err
	}
	code, err := persister.AccessCode(ctx, cfg.Auth.AccessCode)
	if err != nil {
		return err
	}

	m := metrics.New()
	opts := []service.Option{
		service.WithLogger(zaplog),
		service.WithPersister(persister),
		service.WithRecorder(m),
	}
	if brokers := events.Brokers(cfg.Events.KafkaBrokers); len(brokers) > 0 {
		publisher := events.NewPublisher(events.NewWriter(brokers, cfg.Events.Topic), zaplog)
		defer publisher.Close()
		opts = append(opts, service.WithPublisher(publisher))
		zaplog.Info("order events enabled", zap.Strings("brokers", brokers), zap.String("topic", cfg.Events.Topic))
	}
	engine := commission.NewEngine(cfg.Commission.Rates())

	srv := httpapi.NewServer(httpapi.Deps{
		Orders:  service.NewOrderService(ordersRepo, internsRepo, store, tx, engine, opts...),
		Roster:  service.NewRosterService(internsRepo, tx, opts...),
		Ledger:  service.NewLedgerService(store, tx, opts...),
		Gate:    auth.NewGate(code, cfg.Auth.TokenSecret, cfg.Auth.TokenTTL),
		Metrics: m,
		Log:     zaplog,
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Engine(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zaplog.Info("HTTP server listening", zap.String("addr", httpServer.Addr), zap.String("storage", cfg.Storage.Driver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			zaplog.Error("shutdown error", zap.Error(err))
			return err
		}
		// final snapshot
		if err := persister.Save(shutdownCtx); err != nil {
			zaplog.Error("final save failed", zap.Error(err))
		}
		return nil
	})
	return g.Wait()
}
