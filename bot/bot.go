package bot

import (
	"fmt"

	"tokenlotto/application"
	"tokenlotto/bot/features/ledger"
	"tokenlotto/bot/features/lottery"
	"tokenlotto/bot/features/memo"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token       string
	GuildID     string // empty registers commands globally
	TicketPrice int64
}

// Bot is the Discord host. Discord user IDs are the ledger account IDs.
type Bot struct {
	config   Config
	session  *discordgo.Session
	commands []*discordgo.ApplicationCommand

	// Feature modules
	ledger  *ledger.Feature
	lottery *lottery.Feature
	memo    *memo.Feature
}

// New connects to Discord and registers the slash commands
func New(config Config, ledgerHandler *application.LedgerHandler, lotteryHandler *application.LotteryHandler, memoHandler *application.MemoHandler) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:  config,
		session: dg,
		ledger:  ledger.NewFeature(ledgerHandler),
		lottery: lottery.NewFeature(lotteryHandler, config.TicketPrice),
		memo:    memo.NewFeature(memoHandler),
	}

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithField("user", r.User.Username).Info("Discord session ready")
	})

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close removes the registered commands and closes the session
func (b *Bot) Close() error {
	for _, cmd := range b.commands {
		if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, b.config.GuildID, cmd.ID); err != nil {
			log.WithFields(log.Fields{
				"command": cmd.Name,
				"error":   err,
			}).Warn("Failed to delete command")
		}
	}
	return b.session.Close()
}

// handleCommands routes slash commands to appropriate features
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch featureFor(i.ApplicationCommandData().Name) {
	case featureLedger:
		b.ledger.HandleCommand(s, i)
	case featureLottery:
		b.lottery.HandleCommand(s, i)
	case featureMemo:
		b.memo.HandleCommand(s, i)
	default:
		log.Warnf("Unknown command: %s", i.ApplicationCommandData().Name)
	}
}
