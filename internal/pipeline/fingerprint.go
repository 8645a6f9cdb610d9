// ABOUTME: Deterministic identity fingerprint over core metadata fields
// ABOUTME: SHA-256 of the ordered identity tuple, lowercase hex
package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Separators that cannot occur inside field values: U+001F between
// identity fields, U+001E between inventor names.
const (
	fieldSep = "\x1f"
	listSep  = "\x1e"
)

// Fingerprint derives the stable identity hash for a record from its
// identity tuple: application number, filing date, entity type, and
// the inventor list in source order. Volatile free text (abstract,
// summary) is deliberately excluded so re-ingestion of the same
// application always yields the same fingerprint.
func Fingerprint(applicationNumber, filingDate, entityType string, inventors []string) string {
	input := strings.Join([]string{
		applicationNumber,
		filingDate,
		entityType,
		strings.Join(inventors, listSep),
	}, fieldSep)
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
