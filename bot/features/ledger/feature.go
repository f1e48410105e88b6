package ledger

import (
	"tokenlotto/application"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature serves the token ledger commands
type Feature struct {
	handler *application.LedgerHandler
}

// NewFeature creates a new ledger feature instance
func NewFeature(handler *application.LedgerHandler) *Feature {
	return &Feature{handler: handler}
}

// HandleCommand routes a ledger slash command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "balance":
		f.handleBalance(s, i)
	case "supply":
		f.handleSupply(s, i)
	case "transfer":
		f.handleTransfer(s, i)
	case "approve":
		f.handleApprove(s, i)
	case "transfer-from":
		f.handleTransferFrom(s, i)
	case "allowance":
		f.handleAllowance(s, i)
	case "history":
		f.handleHistory(s, i)
	default:
		log.Warnf("Unknown ledger command: %s", i.ApplicationCommandData().Name)
	}
}
