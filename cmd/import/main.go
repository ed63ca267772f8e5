package main

import (
	"fmt"
	"os"

	"securecare/internal/database"
	"securecare/internal/importer"
	"securecare/internal/logger"
	"securecare/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Import error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: import <file.csv>")
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	db := dbManager.DB()
	imp := importer.New(db, services.NewAdvisorService(db))

	result, err := imp.Import(file)
	if err != nil {
		return err
	}

	logger.Get().Infow("import finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return nil
}
