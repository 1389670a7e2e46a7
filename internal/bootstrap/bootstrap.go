// Package bootstrap wires together the dependencies of the video extractor API.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/jeff99jackson99/videoextractor/internal/audio"
	"github.com/jeff99jackson99/videoextractor/internal/config"
	"github.com/jeff99jackson99/videoextractor/internal/executor"
	"github.com/jeff99jackson99/videoextractor/internal/media"
	"github.com/jeff99jackson99/videoextractor/internal/pipeline"
	"github.com/jeff99jackson99/videoextractor/internal/storage"
	"github.com/jeff99jackson99/videoextractor/internal/summarization"
	"github.com/jeff99jackson99/videoextractor/internal/transcription"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	Pipeline *pipeline.Service
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	runner := executor.New()
	prober := media.NewProber(runner, cfg.FFprobePath)

	ext := audio.NewExtractor(runner, prober, cfg.FFmpegPath, audio.Options{
		NoiseThreshDB: cfg.SilenceNoiseDB,
		MinSilenceSec: cfg.SilenceMinSeconds,
		PaddingSec:    cfg.PaddingSeconds,
	}, logger)

	transcriber, err := transcription.NewOpenAITranscriber(cfg.OpenAIAPIKey)
	if err != nil {
		return nil, fmt.Errorf("create transcriber: %w", err)
	}

	summarizer, err := summarization.NewOpenAISummarizer(cfg.OpenAIAPIKey,
		summarization.WithModel(cfg.OpenAIModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}

	svc := pipeline.NewService(store, prober, ext, transcriber, summarizer, logger)

	return &Dependencies{Pipeline: svc}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(cfg.TempDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 report uploads configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(cfg.TempDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Info("local storage configured",
		slog.String("temp_dir", cfg.TempDir),
	)
	return localStore, nil
}
