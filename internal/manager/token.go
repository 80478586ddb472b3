package manager

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/jxskiss/base62"

	"github.com/adk-labs/platform/internal/errs"
)

const opaqueTokenBytes = 32

// newOpaqueToken draws a fresh random token value. The raw value is
// handed to the caller exactly once; only its keyed hash is ever stored.
func newOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)

	_, err := rand.Read(buf)
	if err != nil {
		return "", errs.Wrap(ErrGeneratingToken, err)
	}

	return base62.EncodeToString(buf), nil
}

// hashToken computes the HMAC-SHA256 of a raw token under the configured
// pepper. A database dump alone is not enough to forge a token: the
// pepper lives only in configuration.
func hashToken(pepper, raw string) string {
	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(raw))

	return hex.EncodeToString(mac.Sum(nil))
}
