package bot

import (
	"fmt"

	"tokenlotto/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type feature int

const (
	featureUnknown feature = iota
	featureLedger
	featureLottery
	featureMemo
)

var commandFeatures = map[string]feature{
	"balance":       featureLedger,
	"supply":        featureLedger,
	"transfer":      featureLedger,
	"approve":       featureLedger,
	"transfer-from": featureLedger,
	"allowance":     featureLedger,
	"history":       featureLedger,
	"lottery":       featureLottery,
	"memo":          featureMemo,
}

func featureFor(command string) feature {
	return commandFeatures[command]
}

var minAmount = float64(1)
var minZero = float64(0)

func amountOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "amount",
		Description: description,
		Required:    true,
		MinValue:    &minAmount,
	}
}

func userOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func lotteryIDOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "id",
		Description: "Lottery ID, defaults to the current open lottery",
		Required:    false,
	}
}

func attachedOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "attached",
		Description: description,
		Required:    false,
		MinValue:    &minZero,
	}
}

// commandDefinitions returns every slash command the bot serves
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check a token balance",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("user", "Account to check, defaults to you", false),
			},
		},
		{
			Name:        "supply",
			Description: "Show the total token supply",
		},
		{
			Name:        "transfer",
			Description: "Send tokens to another account",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("user", "Recipient", true),
				amountOption("Amount of tokens to send"),
			},
		},
		{
			Name:        "approve",
			Description: "Allow another account to spend your tokens",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("user", "Spender", true),
				amountOption("New allowance, replaces the current one"),
			},
		},
		{
			Name:        "transfer-from",
			Description: "Spend tokens another account approved for you",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("owner", "Account the tokens come from", true),
				userOption("recipient", "Account the tokens go to", true),
				amountOption("Amount of tokens to move"),
			},
		},
		{
			Name:        "allowance",
			Description: "Check how much a spender may move for an owner",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("owner", "Owner of the tokens", true),
				userOption("spender", "Spender, defaults to you", false),
			},
		},
		{
			Name:        "history",
			Description: "Show your latest ledger activity",
		},
		{
			Name:        "lottery",
			Description: "Run seeded lotteries",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Open a new lottery",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "ticket_price",
							Description: "Minimum payment to enroll",
							Required:    false,
							MinValue:    &minZero,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "enroll",
					Description: "Enroll in a lottery",
					Options: []*discordgo.ApplicationCommandOption{
						attachedOption("Payment sent with the enrollment"),
						lotteryIDOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "draw",
					Description: "Draw the winner of a lottery",
					Options: []*discordgo.ApplicationCommandOption{
						attachedOption("Payment sent with the draw, split into the payout"),
						lotteryIDOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show a lottery and its participants",
					Options: []*discordgo.ApplicationCommandOption{
						lotteryIDOption(),
					},
				},
			},
		},
		{
			Name:        "memo",
			Description: "Store or read a short memo",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Replace your memo",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "text",
							Description: "Memo text",
							Required:    true,
							MaxLength:   entities.MaxMemoLength,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "get",
					Description: "Read a memo",
					Options: []*discordgo.ApplicationCommandOption{
						userOption("user", "Account to read, defaults to you", false),
					},
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := commandDefinitions()

	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.config.GuildID, commands)
	if err != nil {
		return fmt.Errorf("cannot register commands: %w", err)
	}
	b.commands = registered

	log.WithFields(log.Fields{
		"count":   len(registered),
		"guildID": b.config.GuildID,
	}).Info("Registered slash commands")
	return nil
}
