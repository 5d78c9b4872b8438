package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/proyek/internal/cli"
	"github.com/alexanderramin/proyek/internal/config"
	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/export"
	"github.com/alexanderramin/proyek/internal/logging"
	"github.com/alexanderramin/proyek/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)
	orphans := cfg.Orphans()
	clock := cfg.Clock()

	app := &cli.App{
		Projects:  service.NewProjectService(database, uow, orphans, observer),
		Ledger:    service.NewLedgerService(uow, orphans, observer),
		Status:    service.NewStatusService(database, clock, observer),
		Reports:   service.NewReportService(database, observer),
		Import:    service.NewImportService(uow, observer),
		Snapshots: service.NewSnapshotService(database),
		Orphans:   orphans,
		Logger:    logger,
		HTTPAddr:  cfg.HTTPAddr,
		Clock:     clock,
	}

	if cfg.Sheets.Enabled() {
		sheets := cfg.Sheets
		app.Sheets = func(ctx context.Context) (cli.SheetsExporter, error) {
			exp, err := export.NewGoogleSheetsExporter(ctx, sheets)
			if err != nil {
				return nil, fmt.Errorf("connecting to google sheets: %w", err)
			}
			return exp, nil
		}
	}

	// Forms and the stage editor only run on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
