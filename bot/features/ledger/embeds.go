package ledger

import (
	"strings"

	"tokenlotto/bot/common"
	"tokenlotto/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// CreateHistoryEmbed lists the latest ledger entries of an account
func CreateHistoryEmbed(account entities.AccountID, entries []*entities.LedgerEntry) *discordgo.MessageEmbed {
	description := "No ledger activity yet"
	if len(entries) > 0 {
		lines := make([]string, 0, len(entries))
		for _, entry := range entries {
			lines = append(lines, common.FormatEntry(entry, account))
		}
		description = strings.Join(lines, "\n")
	}

	return &discordgo.MessageEmbed{
		Title:       "Ledger history",
		Color:       common.ColorInfo,
		Description: description,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Newest first",
		},
	}
}
