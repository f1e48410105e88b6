package lottery

import (
	"tokenlotto/application"
	"tokenlotto/bot/common"

	"github.com/bwmarrin/discordgo"
)

// Feature serves the /lottery command
type Feature struct {
	handler     *application.LotteryHandler
	ticketPrice int64
}

// NewFeature creates a new lottery feature instance. ticketPrice is used
// when /lottery create is run without an explicit price.
func NewFeature(handler *application.LotteryHandler, ticketPrice int64) *Feature {
	return &Feature{
		handler:     handler,
		ticketPrice: ticketPrice,
	}
}

// HandleCommand routes a /lottery subcommand
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	subcommand, options := common.Subcommand(i)
	switch subcommand {
	case "create":
		f.handleCreate(s, i, options)
	case "enroll":
		f.handleEnroll(s, i, options)
	case "draw":
		f.handleDraw(s, i, options)
	case "status":
		f.handleStatus(s, i, options)
	default:
		common.RespondWithError(s, i, "Unknown lottery command")
	}
}
