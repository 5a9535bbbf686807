package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/estudia-cli/estudia/internal/ai"
	"github.com/estudia-cli/estudia/internal/cli"
	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/repository"
	"github.com/estudia-cli/estudia/internal/service"
	"github.com/estudia-cli/estudia/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.estudia/estudia.db
	dbPath := os.Getenv("ESTUDIA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".estudia", "estudia.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	examRepo := repository.NewSQLiteExamRepo(database)
	topicRepo := repository.NewSQLiteTopicRepo(database)
	scheduleRepo := repository.NewSQLiteScheduleRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	pomodoroRepo := repository.NewSQLitePomodoroRepo(database)
	noteRepo := repository.NewSQLiteNoteRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// AI planner is optional: without a credential the plan service runs the
	// local generator only.
	var aiPlanner service.AIPlanner
	aiCfg := ai.LoadConfig()
	if aiCfg.HasCredential() {
		var observer ai.Observer = ai.NoopObserver{}
		if aiCfg.LogCalls {
			observer = ai.NewLogObserver(os.Stderr)
		}
		client := ai.NewClient(aiCfg, observer)
		aiPlanner = ai.NewPlanner(client, nil)
	}

	st := store.New(os.Getenv("ESTUDIA_PROFILE"))

	// ESTUDIA_DEBUG surfaces use-case telemetry on stderr.
	var svcOpts []service.Option
	if os.Getenv("ESTUDIA_DEBUG") != "" {
		svcOpts = append(svcOpts, service.WithUseCaseObserver(service.NewLogUseCaseObserver(os.Stderr)))
	}

	app := &cli.App{
		Profiles: service.NewProfileService(profileRepo),
		Catalog:  service.NewCatalogService(subjectRepo, examRepo, topicRepo, scheduleRepo),
		Plans: service.NewPlanService(subjectRepo, examRepo, topicRepo, scheduleRepo,
			planRepo, uow, st, aiPlanner, nil, svcOpts...),
		Focus:    service.NewFocusService(pomodoroRepo, uow, svcOpts...),
		Notes:    service.NewNoteService(noteRepo, uow),
		Importer: service.NewImportService(profileRepo, uow),
	}

	// Color output only on real terminals.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		os.Setenv("NO_COLOR", "1")
	}

	return cli.NewRootCmd(app).Execute()
}
