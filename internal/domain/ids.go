package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// newID returns a random identifier for user-created records.
var newID = uuid.NewString

// deterministicID produces a stable id from the given parts so that
// re-importing the same upstream record yields the same id.
func deterministicID(prefix string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return prefix + "-" + hex.EncodeToString(hash[:8])
}
