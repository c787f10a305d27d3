package main

import (
	"fmt"
	"log"

	"topsec-backend/internal/config"
	"topsec-backend/internal/database"
	"topsec-backend/internal/handlers"
	"topsec-backend/internal/logger"
	"topsec-backend/internal/notify"
	"topsec-backend/internal/server"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "topsec-backend")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	database.Init(cfg.DBDSN)

	// без Redis события просто не шлём — дашборды перечитают сами
	var notifier notify.Notifier = notify.Noop{}
	if cfg.RedisAddr != "" {
		notifier = notify.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, zlog)
	}

	handlers.Setup(database.DB, notifier, zlog)

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
