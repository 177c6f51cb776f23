package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/auth"
	"github.com/mikepea/shortmark/pkg/shortmark/cache"
	"github.com/mikepea/shortmark/pkg/shortmark/config"
	"github.com/mikepea/shortmark/pkg/shortmark/database"
	"github.com/mikepea/shortmark/pkg/shortmark/logging"
	"github.com/mikepea/shortmark/pkg/shortmark/server"
	"github.com/mikepea/shortmark/pkg/shortmark/shortcode"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title Shortmark API
// @version 1.0
// @description Bookmarks with three character short URLs and visit counting.

// @contact.name Shortmark Support
// @contact.url https://github.com/mikepea/shortmark

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token or API key. Format: "Bearer {token}"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "shortmark-server:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "shortmark-server",
		Usage: "bookmark service with short redirect URLs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"SHORTMARK_CONFIG"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema and exit",
				Action: migrate,
			},
		},
	}
}

// bootstrap loads the configuration and builds the logger
func bootstrap(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func openDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	return database.OpenAndMigrate(database.Options{
		Driver:        cfg.Database.Driver,
		DSN:           cfg.Database.DSN,
		MaxOpenConns:  cfg.Database.MaxOpenConns,
		SlowThreshold: cfg.Database.SlowThreshold,
		LogQueries:    cfg.Database.LogQueries,
	}, log)
}

func migrate(c *cli.Context) error {
	cfg, log, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	log.Info("database migrations completed", zap.String("driver", cfg.Database.Driver))
	return database.Close(db)
}

func serve(c *cli.Context) error {
	cfg, log, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("starting shortmark", zap.Any("config", cfg.Redacted()))

	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var resolveCache cache.Cache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err != nil {
			return err
		}
		defer client.Close()
		resolveCache = cache.NewRedis(client, cfg.Redis.TTL)
	} else {
		log.Info("redis not configured, resolve cache disabled")
	}

	if !log.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.NewRouter(server.Deps{
		DB:                db,
		Tokens:            auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Cache:             resolveCache,
		Generator:         shortcode.New(shortcode.WithMaxAttempts(cfg.ShortCode.MaxAttempts)),
		MaxInsertAttempts: cfg.ShortCode.MaxInsertAttempts,
		Log:               log,
		Swagger:           cfg.Server.Swagger,
		BaseURL:           cfg.Server.BaseURL,
	})

	return server.Run(ctx, server.NewHTTPServer(cfg.Server.Addr, router), cfg.Server.ShutdownTimeout, log)
}
