package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/iosebkhe/blog-list-full-stack/internal/blogservice"
	"github.com/iosebkhe/blog-list-full-stack/internal/common"
	"github.com/iosebkhe/blog-list-full-stack/internal/notifyservice"
	"github.com/iosebkhe/blog-list-full-stack/internal/platform/mongodb"
	"github.com/iosebkhe/blog-list-full-stack/internal/platform/postgres"
	"github.com/iosebkhe/blog-list-full-stack/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
}

// store is implemented by every backend under internal/platform.
type store interface {
	userservice.Repository
	blogservice.Repository
}

func newApplication(cfg *Config, logger *slog.Logger, st store, mb common.MessageProducer) *application {
	tokens := userservice.NewTokenIssuer(cfg.Secret, cfg.TokenTTL)

	return &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(st, tokens),
		blogService: blogservice.NewBlogService(st, mb, logger),
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *Config, logger *slog.Logger) error {
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open the %s store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	logger.Info("store ready", slog.String("driver", cfg.StoreDriver))

	var producer common.MessageProducer = common.DiscardProducer{}

	if cfg.MQHost != "" {
		URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
		broker, err := common.NewMessageBroker(URI)
		if err != nil {
			return fmt.Errorf("failed to connect to the message broker: %w", err)
		}
		defer broker.Close()

		err = common.SetupBlogExchange(broker)
		if err != nil {
			return fmt.Errorf("failed to setup the blog exchange: %w", err)
		}
		producer = broker

		if cfg.MailHost != "" && cfg.MailRecipient != "" {
			mailer := notifyservice.NewMailer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailSender, notifyservice.NewTemplate())
			notifier := notifyservice.NewNotifyService(broker, mailer, cfg.MailRecipient, logger)

			err = notifier.SendBlogCreatedNotifications()
			if err != nil {
				return fmt.Errorf("failed to start blog notifications: %w", err)
			}
			defer notifier.Close()
		}
	} else {
		logger.Info("no message broker configured, blog events are discarded")
	}

	app := newApplication(cfg, logger, st, producer)

	return app.serve(cfg.Port)
}

// openStore connects to the backend named by cfg.StoreDriver and prepares its schema.
func openStore(cfg *Config) (store, func(), error) {
	switch cfg.StoreDriver {
	case storePostgres:
		URI := common.PostgresURI(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

		db, err := common.NewDB(URI, 25, 25, 15*time.Minute)
		if err != nil {
			return nil, nil, err
		}

		m, err := common.MigrateDB(cfg.MigrationsPath, URI)
		if err != nil {
			common.CloseDB(db)
			return nil, nil, fmt.Errorf("could not run migrations: %w", err)
		}
		m.Close()

		return postgres.NewStore(db), func() { common.CloseDB(db) }, nil

	default:
		client, err := common.NewMongoClient(cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}

		s := mongodb.NewStore(client.Database(cfg.MongoDatabase))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.EnsureIndexes(ctx); err != nil {
			common.CloseMongoClient(client)
			return nil, nil, err
		}

		return s, func() { common.CloseMongoClient(client) }, nil
	}
}
