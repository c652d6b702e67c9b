package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/velvetkeys/inkpost/internal/authservice"
	"github.com/velvetkeys/inkpost/internal/common"
	"github.com/velvetkeys/inkpost/internal/mailservice"
	"github.com/velvetkeys/inkpost/internal/mediaservice"
	"github.com/velvetkeys/inkpost/internal/newsletterservice"
	"github.com/velvetkeys/inkpost/internal/postservice"
	"github.com/velvetkeys/inkpost/internal/store"
)

type application struct {
	config            *Config
	logger            *slog.Logger
	gate              authservice.Gate
	postService       *postservice.PostService
	newsletterService *newsletterservice.NewsletterService
	mediaService      *mediaservice.MediaService
	mailService       *mailservice.MailService
	broker            *common.MessageBroker
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the storage backend. A failure here is logged but does
	// not prevent the process from listening: requests that touch storage
	// return an internal error until the backend becomes reachable after
	// a restart.
	st := openStore(cfg, logger)

	// Initialize the cache shared by sessions and read paths
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	// Initialize the auth gate
	gate, err := authservice.New(authservice.Config{
		Username:   cfg.AdminUsername,
		Secret:     cfg.AdminPassword,
		SigningKey: []byte(cfg.AuthSecret),
		Mode:       cfg.AuthMode,
	}, cache, logger)
	if err != nil {
		logger.Error("failed to initialize the auth gate", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the image uploader
	uploader, err := openUploader(cfg)
	if err != nil {
		logger.Error("failed to initialize the image uploader", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := &application{
		config:            cfg,
		logger:            logger,
		gate:              gate,
		newsletterService: newsletterservice.NewNewsletterService(st),
		mediaService:      mediaservice.NewMediaService(uploader),
	}

	// Connect the optional announcement pipeline. A broken broker only
	// disables announcements; the blog itself keeps working.
	var producer common.MessageProducer
	if cfg.MailEnabled {
		URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
		broker, err := common.NewMessageBroker(URI)
		if err != nil {
			logger.Error("failed to connect to the message broker; announcements disabled", slog.String("error", err.Error()))
		} else {
			defer broker.Close()

			if err := common.SetupPostExchange(broker); err != nil {
				logger.Error("failed to setup the post exchange; announcements disabled", slog.String("error", err.Error()))
			} else {
				producer = broker
				app.broker = broker
				app.mailService = mailservice.NewMailService(broker, st, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger)
				app.mailService.SendPostAnnouncements()
				defer app.mailService.Close()
			}
		}
	}

	app.postService = postservice.NewPostService(st, cache, producer, logger)

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func openStore(cfg *Config, logger *slog.Logger) store.Store {
	switch cfg.StorageBackend {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		st, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			logger.Error("failed to initialize the mongo store; starting degraded", slog.String("error", err.Error()))
			return store.NewUnavailable(err)
		}
		return st
	default:
		st, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			logger.Error("failed to initialize the file store; starting degraded", slog.String("dir", cfg.DataDir), slog.String("error", err.Error()))
			return store.NewUnavailable(err)
		}
		return st
	}
}

func openUploader(cfg *Config) (mediaservice.Uploader, error) {
	switch cfg.UploadBackend {
	case "minio":
		return mediaservice.NewMinioUploader(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.UploadBaseURL, cfg.MinioUseSSL)
	default:
		return mediaservice.NewDiskUploader(cfg.UploadDir, cfg.UploadBaseURL)
	}
}
