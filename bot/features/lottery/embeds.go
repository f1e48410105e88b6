package lottery

import (
	"encoding/hex"
	"fmt"
	"strings"

	"tokenlotto/bot/common"
	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

const maxShownParticipants = 5

// CreateLotteryEmbed describes a lottery and its participants
func CreateLotteryEmbed(lottery *entities.Lottery, participants []*entities.LotteryParticipant) *discordgo.MessageEmbed {
	participantStr := "No participants yet"
	if len(participants) > 0 {
		shown := min(len(participants), maxShownParticipants)
		lines := make([]string, 0, shown+1)
		for _, p := range participants[:shown] {
			lines = append(lines, fmt.Sprintf("%d. %s", p.Position, common.FormatAccount(p.Account)))
		}
		if len(participants) > shown {
			lines = append(lines, fmt.Sprintf("...and %d more", len(participants)-shown))
		}
		participantStr = strings.Join(lines, "\n")
	}

	status := "Open"
	color := common.ColorInfo
	if lottery.IsResolved() {
		status = fmt.Sprintf("Won by %s", common.FormatAccount(*lottery.WinnerID))
		color = common.ColorSuccess
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Lottery #%d", lottery.ID),
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket Price", Value: common.FormatBalance(lottery.TicketPrice), Inline: true},
			{Name: "Status", Value: status, Inline: true},
			{Name: "Participants", Value: participantStr, Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Seed %s", hex.EncodeToString(lottery.Seed[:4])),
		},
	}
}

// CreateResultEmbed announces a drawn lottery
func CreateResultEmbed(result *interfaces.DrawResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎉 Lottery #%d drawn", result.Lottery.ID),
		Color:       common.ColorSuccess,
		Description: fmt.Sprintf("%s wins out of %d participants", common.FormatAccount(result.Winner), result.ParticipantCount),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Payout", Value: common.FormatBalance(result.Payout), Inline: true},
			{Name: "Payment", Value: common.FormatDirective(result.Directive), Inline: false},
		},
	}
}
