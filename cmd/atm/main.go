package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/miniatm/pkg/cli"
	"github.com/amirasaad/miniatm/pkg/config"
	"github.com/amirasaad/miniatm/pkg/ledger"
	"github.com/amirasaad/miniatm/pkg/service"
	"github.com/amirasaad/miniatm/pkg/storage"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dataFile := flag.String("data", "", "path to the bank snapshot file (overrides ATM_DATA_FILE)")
	flag.Parse()

	logger := slog.Default()
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	store := storage.NewStore(cfg.DataFile)
	ldg, err := loadLedger(cfg, store, logger)
	if err != nil {
		return err
	}

	svc := service.NewBankService(ldg, store, logger)
	session := cli.NewSession(svc, os.Stdin, os.Stdout, cfg.MaxPINAttempts)

	// EOF on stdin is a normal way to leave the menu loop.
	if err := session.Run(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if err := svc.Close(); err != nil {
		logger.Warn("failed to save bank data on exit", "path", store.Path(), "error", err)
		return nil
	}
	logger.Info("bank data saved", "path", store.Path())
	return nil
}

// loadLedger restores the ledger from the snapshot file. A missing file
// starts a fresh bank; an unreadable or invalid snapshot either aborts
// startup (StrictLoad) or falls back to a fresh bank with a warning.
func loadLedger(cfg *config.App, store *storage.Store, logger *slog.Logger) (*ledger.Ledger, error) {
	snap, err := store.Load()
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("starting new bank, no saved data found", "path", store.Path())
		return ledger.New(), nil
	}
	if err == nil {
		var ldg *ledger.Ledger
		if ldg, err = ledger.FromSnapshot(snap); err == nil {
			logger.Info("loaded bank data", "path", store.Path(), "accounts", ldg.Len())
			return ldg, nil
		}
	}

	if cfg.StrictLoad {
		return nil, fmt.Errorf("cannot load snapshot %s: %w", store.Path(), err)
	}
	logger.Warn("snapshot unreadable, starting new bank", "path", store.Path(), "error", err)
	return ledger.New(), nil
}
