package testutil

import (
	"tokenlotto/domain/entities"
)

// TestSeed is a fixed lottery seed for reproducible draws
var TestSeed = entities.FixedEntropy{
	0x5e, 0xed, 0x5e, 0xed, 0x01, 0x02, 0x03, 0x04,
	0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c,
	0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x14,
	0x15, 0x16, 0x17, 0x18, 0x19, 0x1a, 0x1b, 0x1c,
}

// CreateTestToken creates a token crediting the whole supply to treasury
func CreateTestToken(totalSupply int64, treasury entities.AccountID) *entities.Token {
	token, err := entities.NewToken(totalSupply, treasury)
	if err != nil {
		panic(err)
	}
	return token
}

// CreateTestLottery creates an open lottery with the fixed test seed
func CreateTestLottery(ticketPrice int64) *entities.Lottery {
	return &entities.Lottery{
		TicketPrice: ticketPrice,
		Seed:        [entities.SeedSize]byte(TestSeed),
	}
}

// CreateTestParticipant creates a participant for the given lottery
func CreateTestParticipant(lotteryID int64, account entities.AccountID, attached int64) *entities.LotteryParticipant {
	return &entities.LotteryParticipant{
		LotteryID: lotteryID,
		Account:   account,
		Attached:  attached,
	}
}
