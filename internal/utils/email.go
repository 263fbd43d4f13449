package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether the address looks like a deliverable email.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail canonicalizes an address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// InvitationLink builds the acceptance URL embedded in invitation emails.
// The format is stable: it is what recipients click from their inbox.
func InvitationLink(origin string, invitationID uint64) string {
	return fmt.Sprintf("%s/invitations/%d", strings.TrimRight(origin, "/"), invitationID)
}
