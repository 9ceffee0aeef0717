package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// SecureToken returns a URL-safe random string built from n bytes of entropy.
// 32 bytes gives 256 bits, enough for session ids and CAPTCHA tokens.
func SecureToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; if it does the
		// process has no business issuing credentials.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
