package cmd

import (
	"context"
	"fmt"
	"time"

	"tokenlotto/application"
	"tokenlotto/bot"
	"tokenlotto/config"
	"tokenlotto/database"
	"tokenlotto/domain/entities"
	"tokenlotto/events"
	"tokenlotto/infrastructure"
	"tokenlotto/infrastructure/observability"
	"tokenlotto/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	log.WithField("environment", cfg.Environment).Info("Starting tokenlotto...")

	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	metrics := observability.GetMetrics()

	log.Info("Running database migrations...")
	if err := database.MigrateUp(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Events committed by a unit of work are fanned out from here
	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypePaymentDirective, logPaymentDirective)

	var natsClient *infrastructure.NATSClient
	if cfg.NATSEnabled {
		natsClient, err = connectNATS(ctx, cfg, eventBus)
		if err != nil {
			return err
		}
		defer natsClient.Close()
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	ledgerHandler := application.NewLedgerHandler(uowFactory, metrics)
	lotteryHandler := application.NewLotteryHandler(uowFactory, entities.CryptoEntropy{}, metrics)
	memoHandler := application.NewMemoHandler(uowFactory, metrics)

	if err := ledgerHandler.EnsureConstructed(ctx, cfg.TotalSupply, entities.AccountID(cfg.TreasuryAccount)); err != nil {
		return fmt.Errorf("failed to construct ledger: %w", err)
	}

	discordBot, err := bot.New(bot.Config{
		Token:       cfg.DiscordToken,
		GuildID:     cfg.GuildID,
		TicketPrice: cfg.TicketPrice,
	}, ledgerHandler, lotteryHandler, memoHandler)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return nil
}

func connectNATS(ctx context.Context, cfg *config.Config, eventBus *events.Bus) (*infrastructure.NATSClient, error) {
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		return nil, err
	}

	subjectMapper := infrastructure.NewEventSubjectMapper()
	if err := infrastructure.EnsureEventStream(natsClient, subjectMapper); err != nil {
		natsClient.Close()
		return nil, err
	}

	publisher := infrastructure.NewNATSEventPublisher(natsClient, subjectMapper)
	eventBus.SubscribeAll(publisher.Publish)
	return natsClient, nil
}

// logPaymentDirective keeps an audit line for every committed directive
func logPaymentDirective(ctx context.Context, event events.Event) error {
	directive, ok := event.(events.PaymentDirectiveEvent)
	if !ok {
		return nil
	}

	log.WithFields(log.Fields{
		"directiveID": directive.Directive.ID,
		"recipient":   directive.Directive.Recipient,
		"amount":      directive.Directive.Amount,
		"reason":      directive.Directive.Reason,
		"issuedAt":    directive.IssuedAt,
	}).Info("Payment directive released")
	return nil
}
