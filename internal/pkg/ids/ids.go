package ids

import (
	"strings"

	"github.com/google/uuid"
)

const (
	PrefixUser        = "user"
	PrefixJob         = "job"
	PrefixApplication = "app"
	PrefixMessage     = "msg"
	PrefixReview      = "rev"
)

// New returns "<prefix>_<12 hex chars>" derived from a random UUID.
func New(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:12]
}
