package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/logging"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/repository"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.apollo/apollo.db
	dbPath := os.Getenv("APOLLO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".apollo", "apollo.db")
	}

	verbose := os.Getenv("APOLLO_VERBOSE") != ""
	logger := logging.Init(filepath.Dir(dbPath), verbose)

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	planRepo := repository.NewSQLitePlanRepo(database)
	recordRepo := repository.NewSQLiteRunRecordRepo(database)
	scoreRepo := repository.NewSQLiteScoreRepo(database)
	recRepo := repository.NewSQLiteRecommendationRepo(database)
	modRepo := repository.NewSQLiteModificationRepo(database)
	analyticsRepo := repository.NewSQLiteAnalyticsRepo(database)
	prefsRepo := repository.NewSQLitePreferencesRepo(database)
	stateRepo := repository.NewSQLiteEngineStateRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Advisor: service.NewAdvisorService(
			uow, planRepo, recordRepo, scoreRepo, recRepo, modRepo,
			analyticsRepo, prefsRepo, stateRepo, logger,
		),
		Plans: service.NewPlanService(uow, planRepo, recordRepo, scoreRepo, prefsRepo, logger),
	}

	return cli.NewRootCmd(app).Execute()
}
