package wlc

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidMAC marks MAC address validation failures. These are caller
// errors: they are returned before any request is issued and are never
// retried. Check with errors.Is.
var ErrInvalidMAC = errors.New("invalid MAC address")

// macSeparators strips the three separator styles seen in the wild:
// colon (aa:bb:cc:dd:ee:ff), dash (aa-bb-cc-dd-ee-ff), and the Cisco
// dotted form (aabb.ccdd.eeff).
var macSeparators = strings.NewReplacer(":", "", "-", "", ".", "")

// NormalizeMAC canonicalizes a MAC address into the form RESTCONF list keys
// use: six lowercase hex byte pairs joined by colons. Input may use any
// separator style and any case. Anything that does not reduce to exactly
// twelve hex digits is rejected with ErrInvalidMAC.
func NormalizeMAC(mac string) (string, error) {
	stripped := strings.ToLower(macSeparators.Replace(mac))

	if len(stripped) != 12 {
		return "", errors.Wrapf(ErrInvalidMAC, "expected 12 hex digits, got %d from %q", len(stripped), mac)
	}

	for _, r := range stripped {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", errors.Wrapf(ErrInvalidMAC, "unexpected character %q in %q", r, mac)
		}
	}

	var b strings.Builder
	b.Grow(17)
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(stripped[i : i+2])
	}

	return b.String(), nil
}
