package main

import (
	"context"
	"strings"
	"time"

	"github.com/DedS3t/monopoly-auction/app/controllers"
	"github.com/DedS3t/monopoly-auction/pkg/routes"
	"github.com/DedS3t/monopoly-auction/platform/board"
	"github.com/DedS3t/monopoly-auction/platform/cache"
	"github.com/DedS3t/monopoly-auction/platform/config"
	"github.com/DedS3t/monopoly-auction/platform/database"
	"github.com/DedS3t/monopoly-auction/platform/logging"
	"github.com/DedS3t/monopoly-auction/platform/simulator"
	socket "github.com/DedS3t/monopoly-auction/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		logrus.WithError(err).Fatal("loading rules")
	}

	db := database.PostgreSQLConnection(cfg)
	defer db.Close()
	if err := database.CreateSchema(context.Background(), db); err != nil {
		logrus.WithError(err).Fatal("preparing database")
	}

	pool := cache.CreateRedisPool(cfg.RedisURL)
	defer pool.Close()
	store := cache.NewStore(pool)

	validator, err := socket.NewValidator()
	if err != nil {
		logrus.WithError(err).Fatal("compiling message schemas")
	}

	seed := cfg.SimulationSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := simulator.Simulator{
		Catalog: board.Standard(),
		Rules:   rules,
		Workers: cfg.SimulationWorkers,
		Seed:    seed,
		Logger:  logging.For("simulator"),
	}

	server, err := socket.NewServer(socket.Deps{
		Config:    cfg,
		DB:        db,
		Store:     store,
		Catalog:   board.Standard(),
		Rules:     rules,
		Simulator: sim,
		Validator: validator,
	})
	if err != nil {
		logrus.WithError(err).Fatal("creating socket server")
	}
	go func() {
		if err := server.ListenAndServe(); err != nil {
			logrus.WithError(err).Fatal("socket server stopped")
		}
	}()

	ctl := &controllers.Controller{
		Config:    cfg,
		DB:        db,
		Store:     store,
		Simulator: sim,
		Log:       logging.For("http"),
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{AllowOrigins: strings.Join(cfg.AllowedOrigins, ",")}))
	routes.Register(app, ctl)

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		logrus.WithError(err).Fatal("http server stopped")
	}
}
