// Package ids generates opaque per-run identifiers for log correlation -
// one assigned to each Prepare call so a run's log lines can be grepped
// out of a shared log stream.
package ids

import (
	"crypto/rand"
	"encoding/base32"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// New returns a fresh opaque identifier, unique enough for log
// correlation within one process lifetime.
func New() string {
	var buf [10]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing means the platform RNG is broken; there is
		// no sane fallback, so surface the same zero-value identifier on
		// every call rather than panicking mid-report.
		return "0000000000000000"
	}
	return encoding.EncodeToString(buf[:])
}
