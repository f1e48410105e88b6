package common

// Embed colors
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287
	ColorWarning = 0xFEE75C
	ColorInfo    = 0x3498DB
)

// HistoryPageSize is how many ledger entries /history shows
const HistoryPageSize = 10
