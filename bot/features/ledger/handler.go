package ledger

import (
	"context"
	"fmt"

	"tokenlotto/application"
	"tokenlotto/bot/common"
	"tokenlotto/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func caller(i *discordgo.InteractionCreate) application.Call {
	return application.Call{Caller: entities.AccountID(common.CallerID(i))}
}

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := common.OptionMap(i.ApplicationCommandData().Options)

	account := entities.AccountID(common.UserOption(options, "user"))
	if account.IsZero() {
		account = caller(i).Caller
	}

	balance, err := f.handler.BalanceOf(ctx, account)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("💰 %s holds **%s** tokens", common.FormatAccount(account), common.FormatBalance(balance))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (f *Feature) handleSupply(s *discordgo.Session, i *discordgo.InteractionCreate) {
	supply, err := f.handler.TotalSupply(context.Background())
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("Total supply is **%s** tokens", common.FormatBalance(supply))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to supply command: %v", err)
	}
}

func (f *Feature) handleTransfer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := common.OptionMap(i.ApplicationCommandData().Options)

	recipient := entities.AccountID(common.UserOption(options, "user"))
	amount := common.IntOption(options, "amount", 0)

	directive, err := f.handler.Transfer(ctx, caller(i), recipient, amount)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("Transferred **%s** tokens to %s\n%s",
		common.FormatBalance(amount), common.FormatAccount(recipient), common.FormatDirective(directive))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to transfer command: %v", err)
	}
}

func (f *Feature) handleApprove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := common.OptionMap(i.ApplicationCommandData().Options)

	spender := entities.AccountID(common.UserOption(options, "user"))
	amount := common.IntOption(options, "amount", 0)

	if err := f.handler.Approve(ctx, caller(i), spender, amount); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("%s may now spend **%s** of your tokens", common.FormatAccount(spender), common.FormatBalance(amount))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to approve command: %v", err)
	}
}

func (f *Feature) handleTransferFrom(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := common.OptionMap(i.ApplicationCommandData().Options)

	owner := entities.AccountID(common.UserOption(options, "owner"))
	recipient := entities.AccountID(common.UserOption(options, "recipient"))
	amount := common.IntOption(options, "amount", 0)

	directive, err := f.handler.TransferFrom(ctx, caller(i), owner, recipient, amount)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("Moved **%s** tokens from %s to %s\n%s",
		common.FormatBalance(amount), common.FormatAccount(owner), common.FormatAccount(recipient), common.FormatDirective(directive))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to transfer-from command: %v", err)
	}
}

func (f *Feature) handleAllowance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := common.OptionMap(i.ApplicationCommandData().Options)

	owner := entities.AccountID(common.UserOption(options, "owner"))
	spender := entities.AccountID(common.UserOption(options, "spender"))
	if spender.IsZero() {
		spender = caller(i).Caller
	}

	allowance, err := f.handler.AllowanceOf(ctx, owner, spender)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("%s may spend **%s** of %s's tokens",
		common.FormatAccount(spender), common.FormatBalance(allowance), common.FormatAccount(owner))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to allowance command: %v", err)
	}
}

func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	account := caller(i).Caller

	entries, err := f.handler.History(ctx, account, common.HistoryPageSize)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, CreateHistoryEmbed(account, entries), true); err != nil {
		log.Errorf("Error responding to history command: %v", err)
	}
}
