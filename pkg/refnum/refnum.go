// Package refnum generates the opaque unique reference numbers that join a
// draft to its eventual sale and payment records.
package refnum

import (
	"strings"

	"github.com/google/uuid"
)

// Default prefixes for the record kinds that carry reference numbers
const (
	DraftPrefix = "DFT"
	SalePrefix  = "SAL"
)

// Generate returns a reference of the form PREFIX-XXXXXXXX with a random
// uppercase suffix. Uniqueness is enforced by the store, not here; the
// suffix only makes collisions unlikely.
func Generate(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// HasPrefix reports whether the reference carries the given prefix
func HasPrefix(reference, prefix string) bool {
	return strings.HasPrefix(reference, prefix+"-")
}
