package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashMethod     = "pbkdf2:sha256"
	hashIterations = 600000
	saltLength     = 16
	keyLength      = sha256.Size
)

var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives a salted PBKDF2-HMAC-SHA256 key and encodes it as
// "pbkdf2:sha256:<iterations>$<salt>$<hex key>".
func HashPassword(password string) (string, error) {
	return HashPasswordWithIterations(password, hashIterations)
}

// HashPasswordWithIterations is HashPassword with an explicit work factor.
func HashPasswordWithIterations(password string, iterations int) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	key := pbkdf2.Key([]byte(password), []byte(saltHex), iterations, keyLength, sha256.New)

	return fmt.Sprintf("%s:%d$%s$%s", hashMethod, iterations, saltHex, hex.EncodeToString(key)), nil
}

// CheckPasswordHash re-derives the key with the stored salt and iteration
// count and compares in constant time.
func CheckPasswordHash(password, encoded string) bool {
	iterations, salt, want, err := parseHash(encoded)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func parseHash(encoded string) (iterations int, salt string, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 {
		return 0, "", nil, ErrMalformedHash
	}

	method, iterStr, ok := strings.Cut(parts[0], ":sha256:")
	if !ok || method != "pbkdf2" {
		return 0, "", nil, ErrMalformedHash
	}
	iterations, err = strconv.Atoi(iterStr)
	if err != nil || iterations <= 0 {
		return 0, "", nil, ErrMalformedHash
	}

	key, err = hex.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return 0, "", nil, ErrMalformedHash
	}
	return iterations, parts[1], key, nil
}
