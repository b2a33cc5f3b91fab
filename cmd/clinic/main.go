package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-ledger/internal/adapters/storage"
	"github.com/clinicdesk/clinic-ledger/internal/application/services"
	"github.com/clinicdesk/clinic-ledger/internal/shell"
	"github.com/clinicdesk/clinic-ledger/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Console sessions only want the prompts; keep log noise to warnings.
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	catalogRepo := storage.NewFileCatalogAdapter(cfg.Storage.ConfigFile)
	catalog, rules, err := catalogRepo.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load clinic configuration: %v\n", err)
		os.Exit(1)
	}

	snapshots := storage.NewFileSnapshotAdapter(cfg.Storage.DataDir)
	pricing := services.NewPricingService(catalog, rules)
	ledger := services.NewLedgerService(cfg.Clinic.Name, pricing, catalog, snapshots, nil)
	if err := ledger.LoadSnapshot(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load roster snapshot: %v\n", err)
		os.Exit(1)
	}

	sh := shell.New(ledger, cfg.Clinic.TreatBatchSize, os.Stdin, os.Stdout)
	if err := sh.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "session ended with error: %v\n", err)
		os.Exit(1)
	}
}
