package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"loan-evaluator/config"
	httpLayer "loan-evaluator/http"
	"loan-evaluator/repository"
	"loan-evaluator/service"
)

func newCompleter(conf config.CompletionConfig) service.Completer {
	if conf.Provider == "anthropic" {
		return service.NewAnthropicCompleter(conf.APIKey, conf.Model)
	}
	return service.NewOpenAICompleter(conf.Endpoint, conf.APIKey, conf.Timeout)
}

func newCache(logger *zap.Logger, conf config.StorageConfig) (repository.CacheRepository, func()) {
	if conf.RedisAddr == "" {
		return repository.NewMemoryCache(), func() {}
	}

	cache := repository.NewRedisCache(conf.RedisAddr, conf.CacheTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("redis not reachable, latest results will not be kept",
			zap.String("op", "main"),
			zap.String("addr", conf.RedisAddr),
			zap.Error(err),
		)
	}
	return cache, func() { _ = cache.Close() }
}

func newAuditRepository(conf config.StorageConfig) (repository.EvaluationRepository, func(), error) {
	if conf.SQLitePath == "" {
		return repository.NewEvaluationRepositoryMemory(conf.AuditLimit), func() {}, nil
	}
	repo, err := repository.NewSQLiteEvaluationRepository(conf.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { _ = repo.Close() }, nil
}

func main() {
	configLocation := flag.String("config", "", "path to configuration file (optional)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(conf.Logging)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	auditRepo, closeAudit, err := newAuditRepository(conf.Storage)
	if err != nil {
		logger.Fatal("failed to open audit repository",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer closeAudit()

	cache, closeCache := newCache(logger, conf.Storage)
	defer closeCache()

	evaluationService := service.NewEvaluationService(
		newCompleter(conf.Completion),
		auditRepo,
		logger.Named("engine"),
		service.Sampling{
			MaxTokens:   conf.Completion.MaxTokens,
			Temperature: conf.Completion.Temperature,
		},
	)

	rateLimiter := httpLayer.NewRateLimiter(conf.RateLimit.Capacity, conf.RateLimit.Window)
	defer rateLimiter.Stop()

	httpLogger := logger.Named("http")
	router := httpLayer.NewRouter(
		httpLayer.NewLoanHandler(httpLogger),
		httpLayer.NewEvaluationHandler(evaluationService, cache, auditRepo, httpLogger),
		rateLimiter,
		httpLogger,
	)

	server := &http.Server{
		Addr:         conf.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: conf.Completion.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("loan evaluator listening",
			zap.String("addr", conf.Server.Addr),
			zap.String("provider", conf.Completion.Provider),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("error starting server", zap.Error(err))
		return
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
