package util

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"
)

// nonceBytes is the entropy of a verification nonce; 16 bytes renders as a
// 32-character hex string, short enough for a DNS TXT record.
const nonceBytes = 16

// GenerateNonce returns a fresh random proof string for verification
// challenges.
func GenerateNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	return hex.EncodeToString(buf), nil
}
