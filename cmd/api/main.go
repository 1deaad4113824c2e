package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blockpad-io/blockpad-backend/config"
	"github.com/blockpad-io/blockpad-backend/internal/autosave"
	"github.com/blockpad-io/blockpad-backend/internal/boards"
	"github.com/blockpad-io/blockpad-backend/internal/bootstrap"
	"github.com/blockpad-io/blockpad-backend/internal/console"
	"github.com/blockpad-io/blockpad-backend/internal/projects"
	"github.com/blockpad-io/blockpad-backend/internal/session/service"
	"github.com/blockpad-io/blockpad-backend/internal/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	var store projects.Store = projects.NewRedisStore(rdb)
	var dbPool *pgxpool.Pool
	if cfg.UsePostgres() {
		dbPool, err = bootstrap.OpenDB(ctx, &cfg.Database, bootstrap.DBOptions{})
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer dbPool.Close()
		store = projects.NewPostgresStore(dbPool)
	} else {
		log.Println("DB_HOST not set, running with the Redis project store")
	}

	catalog, err := boards.Load(cfg.Session.BoardsFile)
	if err != nil {
		log.Fatalf("boards: %v", err)
	}
	if !catalog.Has(cfg.Session.DefaultBoard) {
		log.Fatalf("boards: default board %q not in catalog", cfg.Session.DefaultBoard)
	}

	consoleRepo := console.NewRepo(rdb)
	sink := console.NewSink(consoleRepo)
	bridge := workspace.NewBridge()

	orch := service.NewOrchestrator(store, bridge, sink, catalog, cfg.Session.DefaultBoard)

	scheduler := autosave.NewScheduler(time.Duration(cfg.Session.AutosaveIntervalSec)*time.Second, orch)
	orch.SetProjectChangeHook(scheduler.Rearm)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("autosave: %v", err)
	}
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  "blockpad-backend",
		Version:      cfg.App.Version,
		DB:           dbPool,
		Redis:        rdb,
		Store:        store,
		Bridge:       bridge,
		ConsoleRepo:  consoleRepo,
		Catalog:      catalog,
		Orchestrator: orch,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
