package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gauravcr7rm/equal-weighted-stock-index/config"
	"github.com/gauravcr7rm/equal-weighted-stock-index/data"
	"github.com/gauravcr7rm/equal-weighted-stock-index/data/cache"
	"github.com/gauravcr7rm/equal-weighted-stock-index/data/repository/postgres"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/externalApi/alphaVantageApi"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/externalApi/cloudStorageApi/googleDriveApi"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/externalApi/sp500Api"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/externalApi/yahooApi"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/httpserver"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/reportGenerator/xlsxGenerator"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/scheduler"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/service/indexService"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/transport/httpapi"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgClient := data.NewPostgresClient(cfg)
	defer pgClient.Close()

	pgRepo := postgres.NewPostgres(cfg, pgClient)

	redisClient := data.NewRedisClient(cfg)
	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient, cfg)

	sp500ApiClient := sp500Api.New(cfg)

	var marketDataApi indexService.MarketDataApi
	switch cfg.MarketData.Source {
	case "alphavantage":
		marketDataApi = alphaVantageApi.New(cfg)
	default:
		marketDataApi = yahooApi.New(cfg)
	}

	reportGenerator := xlsxGenerator.New(cfg)

	var cloudStorage indexService.CloudStorage
	var googleCloudStorage *googleDriveApi.GoogleDriveApi
	if cfg.GoogleDrive.Enabled {
		googleCloudStorage = googleDriveApi.New(ctx, cfg)
		cloudStorage = googleCloudStorage
	}

	indexSrv := indexService.New(cfg, pgRepo, redisCache, sp500ApiClient, marketDataApi, reportGenerator, cloudStorage)

	sched := scheduler.New()
	sched.NewCrontabJob("acquire market data", indexSrv.AcquireMarketData, cfg.Acquisition.Crontab, cfg.Acquisition.RunOnStart)
	if googleCloudStorage != nil {
		sched.NewIntervalJob("delete old drive files", googleCloudStorage.DeleteOldFiles, cfg.GoogleDrive.CleanupInterval, false)
	}
	sched.Start()
	defer sched.Stop()

	controller := httpapi.NewController(indexSrv)

	server := httpserver.New(cfg, controller.Routes())
	server.Start()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	server.Stop(shutdownCtx)
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
