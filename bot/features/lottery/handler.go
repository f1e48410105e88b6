package lottery

import (
	"context"
	"fmt"

	"tokenlotto/application"
	"tokenlotto/bot/common"
	"tokenlotto/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type optionMap = map[string]*discordgo.ApplicationCommandInteractionDataOption

func call(i *discordgo.InteractionCreate, options optionMap) application.Call {
	return application.Call{
		Caller:   entities.AccountID(common.CallerID(i)),
		Attached: common.IntOption(options, "attached", 0),
	}
}

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, options optionMap) {
	price := common.IntOption(options, "ticket_price", f.ticketPrice)

	lottery, err := f.handler.Construct(context.Background(), price)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"lotteryID":   lottery.ID,
		"ticketPrice": lottery.TicketPrice,
		"createdBy":   common.CallerID(i),
	}).Info("Lottery created from Discord")

	if err := common.RespondWithEmbed(s, i, CreateLotteryEmbed(lottery, nil), false); err != nil {
		log.Errorf("Error responding to lottery create: %v", err)
	}
}

func (f *Feature) handleEnroll(s *discordgo.Session, i *discordgo.InteractionCreate, options optionMap) {
	ctx := context.Background()

	id, err := f.handler.ResolveID(ctx, common.IntOption(options, "id", 0))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	result, err := f.handler.Enroll(ctx, call(i, options), id)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("You are in lottery #%d with %d participants", id, result.ParticipantCount)
	if result.AlreadyEnrolled {
		message = fmt.Sprintf("You were already enrolled in lottery #%d", id)
	}
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to lottery enroll: %v", err)
	}
}

func (f *Feature) handleDraw(s *discordgo.Session, i *discordgo.InteractionCreate, options optionMap) {
	ctx := context.Background()

	id, err := f.handler.ResolveID(ctx, common.IntOption(options, "id", 0))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	result, err := f.handler.Draw(ctx, call(i, options), id)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, CreateResultEmbed(result), false); err != nil {
		log.Errorf("Error responding to lottery draw: %v", err)
	}
}

func (f *Feature) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate, options optionMap) {
	ctx := context.Background()

	id, err := f.handler.ResolveID(ctx, common.IntOption(options, "id", 0))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	lottery, err := f.handler.Get(ctx, id)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	participants, err := f.handler.Participants(ctx, id)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, CreateLotteryEmbed(lottery, participants), true); err != nil {
		log.Errorf("Error responding to lottery status: %v", err)
	}
}
