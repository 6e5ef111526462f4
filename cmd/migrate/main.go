package main

import (
	"pdf-review-server/internal/config"
	"pdf-review-server/internal/database"
	"pdf-review-server/internal/env"
	"pdf-review-server/internal/model"

	"go.uber.org/zap"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database configuration: %+v", cfg.DB)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	if err := db.AutoMigrate(&model.Project{}, &model.Comment{}); err != nil {
		logger.Panic(err)
	}

	logger.Info("Database schema migrated")
}
