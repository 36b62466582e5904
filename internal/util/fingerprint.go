package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes a stable hash identifying one violation across runs,
// used by the baseline filter.
func Fingerprint(ruleID, file string, line int, message string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%s", ruleID, file, line, message)
	return hex.EncodeToString(h.Sum(nil))
}
