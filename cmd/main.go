package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/arunasjusas/invoicing/internal/api"
	"github.com/arunasjusas/invoicing/internal/api/events"
	"github.com/arunasjusas/invoicing/internal/cache"
	"github.com/arunasjusas/invoicing/internal/mailer"
	"github.com/arunasjusas/invoicing/internal/repository"
	"github.com/arunasjusas/invoicing/internal/service"
	"github.com/arunasjusas/invoicing/pkg/broker"
	"github.com/arunasjusas/invoicing/pkg/config"
	"github.com/arunasjusas/invoicing/pkg/logger"
	"github.com/arunasjusas/invoicing/pkg/postgres"
	"github.com/arunasjusas/invoicing/pkg/redis"
)

const (
	ReadTimeout  = 20 * time.Second
	WriteTimeout = 20 * time.Second
)

//nolint:funlen
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l := logger.New()

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(cfg.PostgresDSN)
	panicOnErr("up migrations", err)

	redisClient, err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	panicOnErr("connect to redis", err)
	defer redisClient.Close()

	repo := repository.New(pool)
	producer := broker.NewProducer(l, cfg.Kafka.Brokers)

	defer producer.Close()

	sender := service.Mailer(mailer.New(cfg.Mailer))

	if cfg.MockMailer {
		sender = mailer.NewMock()
	}

	msgCache := cache.NewMessages(redisClient)

	s := service.New(repo, producer, sender, msgCache, service.Topics{
		InvoicesChanged: cfg.Kafka.InvoicesChangedTopic,
		ClientsChanged:  cfg.Kafka.ClientsChangedTopic,
	})

	err = s.RefreshInvoices(ctx)
	panicOnErr("load invoices", err)

	err = s.RefreshClients(ctx)
	panicOnErr("load clients", err)

	// Kafka consumers
	{
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerID,
			cfg.Kafka.InvoicesChangedTopic, cfg.Kafka.ClientsChangedTopic)
		defer consumer.Close()

		eventHandler := events.NewEventHandler(s)

		consumer.Handle(cfg.Kafka.InvoicesChangedTopic, eventHandler.OnInvoicesChanged)
		consumer.Handle(cfg.Kafka.ClientsChangedTopic, eventHandler.OnClientsChanged)
		consumer.Consume(ctx)
	}

	handler := api.NewHandler(s)
	mw := api.NewMiddleware(cfg)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		slog.InfoContext(ctx, "http server started", "port", cfg.HTTPPort)

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}

		slog.DebugContext(ctx, "http server stopped")
	}()

	waitSignal(cancel, server)

	wg.Wait()
}

func waitSignal(cancel context.CancelFunc, server *http.Server) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-ch

	slog.Info("got OS signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		slog.ErrorContext(shutdownCtx, "server shutdown", "error", err)
	}
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
