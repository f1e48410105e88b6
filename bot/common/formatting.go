package common

import (
	"fmt"
	"strings"
	"time"

	"tokenlotto/domain/entities"
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)

	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}

	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatAccount renders an account as a Discord mention
func FormatAccount(account entities.AccountID) string {
	return fmt.Sprintf("<@%s>", account)
}

// FormatDirective describes a payment directive the host will execute
func FormatDirective(directive *entities.PaymentDirective) string {
	if directive.IsZero() {
		return "No payment is due."
	}
	return fmt.Sprintf("💸 Payment of **%s** to %s queued (`%s`)",
		FormatBalance(directive.Amount), FormatAccount(directive.Recipient), directive.ID)
}

// FormatEntry renders one ledger entry as seen from account
func FormatEntry(entry *entities.LedgerEntry, account entities.AccountID) string {
	when := FormatDiscordTimestamp(entry.CreatedAt, "R")
	amount := FormatBalance(entry.Amount)

	switch entry.Kind {
	case entities.EntryKindMint:
		return fmt.Sprintf("🪙 minted **%s** to %s %s", amount, FormatAccount(entry.To), when)
	case entities.EntryKindApproval:
		return fmt.Sprintf("📝 %s allowed %s to spend **%s** %s", FormatAccount(*entry.From), FormatAccount(entry.To), amount, when)
	case entities.EntryKindTransferFrom:
		return fmt.Sprintf("🔁 %s moved **%s** from %s to %s %s",
			FormatAccount(*entry.Spender), amount, FormatAccount(*entry.From), FormatAccount(entry.To), when)
	default:
		if entry.To == account {
			return fmt.Sprintf("⬅️ received **%s** from %s %s", amount, FormatAccount(*entry.From), when)
		}
		return fmt.Sprintf("➡️ sent **%s** to %s %s", amount, FormatAccount(entry.To), when)
	}
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
