package common

import (
	"errors"
	"fmt"

	"tokenlotto/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const genericErrorMessage = "Something went wrong. Please try again later."

var userMessages = []struct {
	err     error
	message string
}{
	{entities.ErrInvalidAmount, "Amount must be positive."},
	{entities.ErrInvalidConfig, "That configuration is not valid."},
	{entities.ErrInvalidMemo, fmt.Sprintf("Memo must be between 1 and %d bytes.", entities.MaxMemoLength)},
	{entities.ErrSelfTransfer, "You cannot send tokens to or from yourself."},
	{entities.ErrSelfApproval, "You cannot approve yourself."},
	{entities.ErrInsufficientBalance, "Insufficient balance."},
	{entities.ErrInsufficientAllowance, "Insufficient allowance."},
	{entities.ErrInsufficientPayment, "The attached payment does not cover the ticket price."},
	{entities.ErrNoParticipants, "Nobody has enrolled in this lottery yet."},
	{entities.ErrAlreadyResolved, "This lottery has already been drawn."},
	{entities.ErrAlreadyInitialized, "The ledger already exists."},
	{entities.ErrNotInitialized, "The ledger has not been created yet."},
	{entities.ErrLotteryNotFound, "No such lottery."},
}

// UserMessage returns the message shown to a Discord user for err.
// System failures never leak their details.
func UserMessage(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return genericErrorMessage
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}

// HandleError logs err and responds to the user. Rejected calls are logged
// at info level, everything else is a system failure.
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	fields := log.Fields{
		"user_id": CallerID(i),
		"command": i.ApplicationCommandData().Name,
		"error":   err.Error(),
	}
	if entities.IsPreconditionError(err) {
		log.WithFields(fields).Info("Command rejected")
	} else {
		log.WithFields(fields).Error("Unexpected error in bot command")
	}

	message := UserMessage(err)
	if deferred {
		FollowUpWithError(s, i, message)
	} else {
		RespondWithError(s, i, message)
	}
}
