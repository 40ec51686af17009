// Command seed creates the bootstrap super-admin configured under bootstrap.*.
// Running it again is a no-op.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"devs-society/backend/config"
	"devs-society/backend/internal/repository"
	"devs-society/backend/internal/service"
	"devs-society/backend/pkg/database"
	applogger "devs-society/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := service.EnsureSuperAdmin(ctx, repository.NewRepository(db), cfg.Bootstrap, logger)
	if err != nil {
		logger.Fatal("seed super-admin failed", zap.Error(err))
	}
	if created {
		fmt.Println("super-admin created")
	} else {
		fmt.Println("super-admin already present, nothing to do")
	}
}
