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

	"github.com/yourusername/vidrelay/api"
	"github.com/yourusername/vidrelay/internal/app"
	"github.com/yourusername/vidrelay/internal/domain"
	"github.com/yourusername/vidrelay/internal/infrastructure"
	"github.com/yourusername/vidrelay/pkg/logger"
)

const version = "1.0.0"

var configPath = flag.String("config", "", "Path to config file (default: search ./configs, ~/.vidrelay, /etc/vidrelay)")

func main() {
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.ForEnvironment(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	}, config.Server.Environment))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting VidRelay server",
		zap.String("version", version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("environment", config.Server.Environment),
		zap.Bool("download_key_required", config.Server.APIKey != ""),
		zap.Bool("journal", config.Journal.Enabled))

	// Initialize journal repository
	var repo domain.LookupRepository
	if config.Journal.Enabled {
		sqliteRepo, err := infrastructure.NewSQLiteLookupRepository(config.Journal.DatabasePath)
		if err != nil {
			log.Fatal("Failed to initialize lookup journal", zap.Error(err))
		}
		defer sqliteRepo.Close()
		repo = sqliteRepo
	}

	services := buildServices(config, repo, log)
	router := api.SetupRouter(&config.Server, services, log)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// buildServices wires the upstream clients, providers and services
func buildServices(config *domain.Config, repo domain.LookupRepository, log *zap.Logger) api.Services {
	upstream := config.Upstream

	// Metadata calls are bounded per request by context; the stream client
	// only bounds the wait for response headers.
	apiClient := infrastructure.NewHTTPClient(upstream.UserAgent, 0)
	streamClient := infrastructure.NewHTTPClient(upstream.UserAgent, upstream.StreamTimeout)

	oembed := infrastructure.NewOEmbedClient(upstream.OEmbedURL, apiClient, upstream.MetadataTimeout)
	providers := []domain.MetadataProvider{
		infrastructure.Guard(infrastructure.NewYouTubeProvider(oembed)),
		infrastructure.Guard(infrastructure.NewTikTokProvider(upstream.TikTokAPIURL, upstream.UserAgent, apiClient, upstream.TikTokTimeout)),
		infrastructure.Guard(infrastructure.NewFacebookProvider(oembed)),
	}

	metadata := app.NewMetadataService(providers, log)
	streamer := infrastructure.NewMediaStreamer(streamClient, upstream.TikTokReferer)

	return api.Services{
		Metadata:  metadata,
		Downloads: app.NewDownloadService(metadata, streamer, &config.Redirect, log),
		Lookups:   app.NewLookupService(repo, log),
	}
}
