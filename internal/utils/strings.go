package utils

import (
	"strings"

	"github.com/google/uuid"
)

// InviteCodeLength is the size of the public code printed on invitations.
const InviteCodeLength = 6

// NewInviteCode returns a short uppercase code cut from a random uuid,
// e.g. "A7B9C2". Uniqueness is enforced by the database, not here.
func NewInviteCode() string {
	return strings.ToUpper(uuid.NewString()[:InviteCodeLength])
}

// NormalizeString trims whitespace and normalizes string input
func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}
