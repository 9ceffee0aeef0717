package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const pbkdf2Rounds = 100000

// VerifyPassword checks plain against a stored hash in either of the two
// supported encodings. A "salt:hexdigest" value selects the PBKDF2-SHA256
// branch (100000 rounds); anything else is treated as a bcrypt hash. Any
// failure during verification reports a failed match rather than an error.
func VerifyPassword(plain, stored string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if salt, digest, found := strings.Cut(stored, ":"); found {
		derived := pbkdf2.Key([]byte(plain), []byte(salt), pbkdf2Rounds, sha256.Size, sha256.New)
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(derived)), []byte(digest)) == 1
	}

	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// HashPassword produces a bcrypt hash for storage, used when provisioning
// the admin account.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
