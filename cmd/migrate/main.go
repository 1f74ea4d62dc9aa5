package main

import (
	"github.com/SeakMengs/CertVault/internal/config"
	"github.com/SeakMengs/CertVault/internal/database"
	"github.com/SeakMengs/CertVault/internal/env"
	"github.com/SeakMengs/CertVault/internal/model"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv()
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

	migrateErr := db.AutoMigrate(&model.Certificate{})
	if migrateErr != nil {
		logger.Panic(migrateErr)
	}
}
