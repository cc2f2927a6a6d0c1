package main

import (
    "context"
    "errors"
    "flag"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"

    "go.uber.org/zap"

    "github.com/fernandokaraka/portugal-engenharia-novo/internal/config"
    "github.com/fernandokaraka/portugal-engenharia-novo/internal/observability"
)

func main() {
    var envFile string
    flag.StringVar(&envFile, "env-file", "", "dotenv file overriding the default .env")
    flag.Parse()

    var opts []config.Option
    if envFile != "" {
        opts = append(opts, config.WithEnvFile(envFile))
    }
    cfg, err := config.Load(opts...)
    if err != nil {
        fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
        os.Exit(1)
    }

    baseLogger, err := observability.NewLogger(cfg.LogLevel)
    if err != nil {
        fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
        os.Exit(1)
    }
    defer func() {
        _ = baseLogger.Sync()
    }()
    logger := baseLogger.Named("web")

    ctx := observability.WithLogger(context.Background(), logger)
    app, err := newApp(ctx, cfg, logger)
    if err != nil {
        logger.Fatal("failed to initialise site", zap.Error(err))
    }

    server := &http.Server{
        Addr:              cfg.Server.Addr(),
        Handler:           app.routes(),
        ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
        ReadTimeout:       cfg.Server.ReadTimeout,
        WriteTimeout:      cfg.Server.WriteTimeout,
        IdleTimeout:       cfg.Server.IdleTimeout,
    }

    shutdown := make(chan os.Signal, 1)
    signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

    serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
    go func() {
        serverLogger.Info("portugal engenharia web listening",
            zap.Bool("dev", cfg.Site.Dev),
            zap.String("mail_transport", cfg.Mail.Transport),
        )
        if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            serverLogger.Fatal("http server error", zap.Error(err))
        }
    }()

    <-shutdown
    logger.Info("shutdown signal received; draining requests")

    shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
    defer cancel()
    if err := server.Shutdown(shutdownCtx); err != nil {
        logger.Error("graceful shutdown failed", zap.Error(err))
    }
}
