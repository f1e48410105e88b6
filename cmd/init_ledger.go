package cmd

import (
	"context"
	"fmt"

	"tokenlotto/application"
	"tokenlotto/config"
	"tokenlotto/database"
	"tokenlotto/domain/entities"
	"tokenlotto/infrastructure"
	"tokenlotto/repository"

	log "github.com/sirupsen/logrus"
)

// InitLedger constructs the ledger from configuration without starting the bot.
// Running it against an existing ledger is a no-op.
func InitLedger(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	if err := database.MigrateUp(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := repository.NewUnitOfWorkFactory(db, infrastructure.NewNoopEventPublisher())
	handler := application.NewLedgerHandler(uowFactory, nil)

	if err := handler.EnsureConstructed(ctx, cfg.TotalSupply, entities.AccountID(cfg.TreasuryAccount)); err != nil {
		return fmt.Errorf("failed to construct ledger: %w", err)
	}

	supply, err := handler.TotalSupply(ctx)
	if err != nil {
		return err
	}
	log.WithField("totalSupply", supply).Info("Ledger ready")
	return nil
}
