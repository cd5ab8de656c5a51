package constants

// Session / context keys
const (
	SessionName      = "outreach_session"
	SessionKeyUserID = "user_id"
	ContextKeyActor  = "actor"
)

// Auth
const (
	MinPasswordLength = 6
	SessionMaxAge     = 86400 * 7 // 7 days
)

// ImportRowOffset converts an array index into the spreadsheet row number
// reported to the user (rows are 1-based and row 1 is the header).
const ImportRowOffset = 2
