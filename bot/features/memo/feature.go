package memo

import (
	"context"
	"fmt"

	"tokenlotto/application"
	"tokenlotto/bot/common"
	"tokenlotto/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature serves the /memo command
type Feature struct {
	handler *application.MemoHandler
}

// NewFeature creates a new memo feature instance
func NewFeature(handler *application.MemoHandler) *Feature {
	return &Feature{handler: handler}
}

// HandleCommand routes a /memo subcommand
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	subcommand, options := common.Subcommand(i)
	switch subcommand {
	case "set":
		f.handleSet(s, i, options)
	case "get":
		f.handleGet(s, i, options)
	default:
		common.RespondWithError(s, i, "Unknown memo command")
	}
}

func (f *Feature) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	var data string
	if opt, ok := options["text"]; ok {
		data = opt.StringValue()
	}

	call := application.Call{Caller: entities.AccountID(common.CallerID(i))}
	if err := f.handler.Store(context.Background(), call, data); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithSuccess(s, i, "Memo saved", true); err != nil {
		log.Errorf("Error responding to memo set: %v", err)
	}
}

func (f *Feature) handleGet(s *discordgo.Session, i *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	account := entities.AccountID(common.UserOption(options, "user"))
	if account.IsZero() {
		account = entities.AccountID(common.CallerID(i))
	}

	data, found, err := f.handler.Get(context.Background(), account)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("%s has no memo", common.FormatAccount(account))
	if found {
		message = fmt.Sprintf("%s's memo:\n>>> %s", common.FormatAccount(account), data)
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         message,
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		log.Errorf("Error responding to memo get: %v", err)
	}
}
