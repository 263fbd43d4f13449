package constants

import "time"

const (
	// SessionCookieName is the cookie carrying the authenticated session.
	SessionCookieName = "account_session"

	// ContextKeyUserID is the gin context / session key for the user ID.
	ContextKeyUserID = "user_id"

	// ContextKeyWorkspace and ContextKeyMember are set by the workspace
	// access middleware.
	ContextKeyWorkspace = "workspace"
	ContextKeyMember    = "workspace_member"

	// ContextKeyAccount is set by the account access middleware.
	ContextKeyAccount = "account"

	MinPasswordLength = 8

	// InvitationTTL is how long a pending invitation stays acceptable.
	InvitationTTL = 7 * 24 * time.Hour

	// UpcomingRemindersLimit caps the dashboard's upcoming reminder list.
	UpcomingRemindersLimit = 10

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
