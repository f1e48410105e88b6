package ledger

import (
	"testing"

	"tokenlotto/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestCreateHistoryEmbed(t *testing.T) {
	empty := CreateHistoryEmbed("1", nil)
	assert.Equal(t, "No ledger activity yet", empty.Description)

	entries := []*entities.LedgerEntry{
		entities.NewTransferEntry("1", "2", 5),
		entities.NewApprovalEntry("1", "3", 9),
	}
	embed := CreateHistoryEmbed("1", entries)
	assert.Contains(t, embed.Description, "sent **5** to <@2>")
	assert.Contains(t, embed.Description, "<@1> allowed <@3> to spend **9**")
}
