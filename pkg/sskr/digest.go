package sskr

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"
)

// Integrity digest for the extended secret. Before the outer split the
// secret is extended to secret || salt || digest, where salt is saltLen
// random bytes and digest is the first digestLen bytes of
// HMAC-SHA256(key = salt, msg = secret). The digest is the sole defense
// against a wrong-but-plausible combination of shares: recombination only
// succeeds when the recovered extension verifies.
//
// The construction is fixed; changing it breaks compatibility with shares
// produced by earlier builds.

const (
	saltLen   = 2
	digestLen = 4

	// extensionLen is the number of bytes appended to the secret before
	// the outer split.
	extensionLen = saltLen + digestLen
)

// extendSecret returns secret || salt || digest with a fresh random salt.
func extendSecret(secret []byte, rng io.Reader) ([]byte, error) {
	extended := make([]byte, len(secret)+extensionLen)
	copy(extended, secret)

	salt := extended[len(secret) : len(secret)+saltLen]
	if err := fillRandom(rng, salt); err != nil {
		return nil, err
	}

	copy(extended[len(secret)+saltLen:], computeDigest(secret, salt))
	return extended, nil
}

// verifyExtended recomputes the digest over the secret and salt portions
// of extended and compares it in constant time.
func verifyExtended(extended []byte) bool {
	if len(extended) <= extensionLen {
		return false
	}
	secret := extended[:len(extended)-extensionLen]
	salt := extended[len(secret) : len(secret)+saltLen]
	digest := extended[len(secret)+saltLen:]
	return hmac.Equal(digest, computeDigest(secret, salt))
}

func computeDigest(secret, salt []byte) []byte {
	h := hmac.New(sha256.New, salt)
	h.Write(secret)
	return h.Sum(nil)[:digestLen]
}
