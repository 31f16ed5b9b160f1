// Package security provides fingerprinting, credential digest, token, and id
// generation utilities.
package security

import (
	"fmt"
	"strconv"
)

// ClientProfile carries the browser/environment attributes a device reports
// about itself. The fingerprint derived from it is stable only while these
// attributes are unchanged.
type ClientProfile struct {
	UserAgent        string `json:"userAgent"`
	Vendor           string `json:"vendor"`
	Platform         string `json:"platform"`
	ScreenResolution string `json:"screenResolution"`
	TimezoneOffset   int    `json:"timezoneOffset"`
	Language         string `json:"language"`
}

// Fingerprint derives the machine identifier for a client profile: the six
// attributes joined with "|", run through a rolling 32-bit hash, absolute
// value, base-36, with a fixed "machine_" prefix.
//
// This is deliberately a weak identifier. It is not globally unique (hash
// collisions are possible and accepted) and it changes whenever the
// environment changes, e.g. after a browser update or screen swap. Both
// properties are known limitations of the scheme, not defects.
func Fingerprint(p ClientProfile) string {
	seed := fmt.Sprintf("%s|%s|%s|%s|%d|%s",
		p.UserAgent, p.Vendor, p.Platform, p.ScreenResolution, p.TimezoneOffset, p.Language)

	var hash int32
	for _, ch := range seed {
		hash = (hash << 5) - hash + int32(ch)
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}

	return "machine_" + strconv.FormatInt(abs, 36)
}
