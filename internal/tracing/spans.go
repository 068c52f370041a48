package tracing

// Span attribute keys for registry tracing.
// These constants define the semantic conventions for span attributes
// across the command pipeline and the ledger.
const (
	// Command attributes
	AttrCommandID       = "command.id"
	AttrCommandType     = "command.type"
	AttrCommandPriority = "command.priority"
	AttrCommandSource   = "command.source"

	// Record attributes
	AttrRecordAddr    = "record.addr"
	AttrRecordSize    = "record.size"
	AttrRecordBalance = "record.balance"
	AttrFunderAddr    = "funder.addr"

	// Registry attributes
	AttrGameAddr        = "game.addr"
	AttrPlayerAddr      = "player.addr"
	AttrLeaderboardAddr = "leaderboard.addr"
	AttrScore           = "score.value"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixCommand = "command.process."
	SpanPrefixLedger  = "ledger."
	SpanPrefixQuery   = "query."
)

// Event names for span events.
const (
	EventCommandValidated = "command.validated"
	EventRecordGrown      = "record.grown"
	EventBalanceTopUp     = "balance.top_up"
	EventErrorOccurred    = "error.occurred"
	EventFollowUpCreated  = "follow_up.created"
)
