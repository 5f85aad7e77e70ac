package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/deployo/ai-backend/config"
	"gitlab.com/deployo/ai-backend/internal/ai/instruction"
	"gitlab.com/deployo/ai-backend/internal/ai/vendor"
	"gitlab.com/deployo/ai-backend/internal/httputil"
	"gitlab.com/deployo/ai-backend/internal/logz"
	"gitlab.com/deployo/ai-backend/internal/tracing"
	"go.uber.org/zap"
)

func main() {
	versionDeploy := time.Now().Unix()

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatal(errors.Wrap(err, "unable to initial config"))
	}
	if err = config.InitTimeZone(cfg.Server.TimeZone); err != nil {
		log.Fatal(err)
	}

	logz.Init(cfg.LogConfig.Level, cfg.Server.Name)
	defer logz.Drop()
	logger := zap.L()
	logger.Info("version " + strconv.FormatInt(versionDeploy, 10))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, tracingEnabled, err := tracing.Init(ctx, *cfg)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()
	if tracingEnabled {
		logger.Info("Otel connected", zap.String("endpoint", cfg.OtelConfig.Endpoint))
	}

	systemInstruction, err := instruction.Load(cfg.RelayConfig.SystemInstructionPath)
	if err != nil {
		logger.Fatal("load system instruction", zap.Error(err))
	}

	httpClient := httputil.InitHttpClient(
		cfg.HTTP.TimeOut,
		cfg.HTTP.MaxIdleConn,
		cfg.HTTP.MaxIdleConnPerHost,
		cfg.HTTP.MaxConnPerHost,
	)

	relayVendor, err := vendor.New(ctx, logger, cfg, systemInstruction, httpClient)
	if err != nil {
		logger.Fatal("init vendor", zap.Error(err))
	}
	logger.Info("vendor ready",
		zap.String("vendor", relayVendor.Provider),
		zap.String("model", relayVendor.Model),
		zap.Int("system_instruction_bytes", len(systemInstruction)),
	)

	app := initFiber(cfg.Server)
	registerRoutes(app, cfg.Server.Name, relayVendor, versionDeploy)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("port", cfg.Server.Port))
	if err = app.Listen(fmt.Sprintf(":%v", cfg.Server.Port)); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
