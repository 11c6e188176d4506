// Package tokencrypt derives per-record keys and encrypts page access
// tokens for storage.
//
// Tokens are encrypted with AES-256 in ECB mode with PKCS#7 padding and
// no IV, so records stay compatible with the existing derivation. ECB
// reveals when two plaintexts under the same key share a block; each
// record gets its own key, which limits this to a single token.
package tokencrypt

import (
	"bytes"
	"crypto/aes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// timestampLayout is ISO-8601 in UTC with millisecond precision,
// e.g. 2024-05-01T12:30:45.123Z.
const timestampLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrInvalidCiphertext is returned when a ciphertext cannot be decoded
	// or is not a whole number of blocks.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")

	// ErrInvalidPadding is returned when decrypted data does not end in
	// valid PKCS#7 padding, which usually means the wrong key was used.
	ErrInvalidPadding = errors.New("invalid padding")
)

// NewHashKey returns hex(SHA-256(userID + " " + timestamp)) where the
// timestamp is at in UTC. The result salts key derivation for a single
// stored record.
func NewHashKey(userID string, at time.Time) string {
	h := sha256.Sum256([]byte(userID + " " + at.UTC().Format(timestampLayout)))
	return hex.EncodeToString(h[:])
}

// DeriveKey returns the 32-byte AES-256 key SHA-256(hashKey + encryptionKey).
func DeriveKey(hashKey, encryptionKey string) []byte {
	h := sha256.Sum256([]byte(hashKey + encryptionKey))
	return h[:]
}

// Encrypt encrypts plaintext with AES-ECB under key and returns the
// hex-encoded ciphertext.
func Encrypt(plaintext string, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("creating AES cipher: %w", err)
	}

	data := pad([]byte(plaintext), block.BlockSize())
	out := make([]byte, len(data))

	for i := 0; i < len(data); i += block.BlockSize() {
		block.Encrypt(out[i:i+block.BlockSize()], data[i:i+block.BlockSize()])
	}

	return hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt.
func Decrypt(hexCiphertext string, key []byte) (string, error) {
	data, err := hex.DecodeString(hexCiphertext)
	if err != nil {
		return "", fmt.Errorf("%w: decoding hex: %v", ErrInvalidCiphertext, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("creating AES cipher: %w", err)
	}

	if len(data) == 0 || len(data)%block.BlockSize() != 0 {
		return "", fmt.Errorf("%w: length %d is not a multiple of %d", ErrInvalidCiphertext, len(data), block.BlockSize())
	}

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += block.BlockSize() {
		block.Decrypt(out[i:i+block.BlockSize()], data[i:i+block.BlockSize()])
	}

	plain, err := unpad(out, block.BlockSize())
	if err != nil {
		return "", err
	}

	return string(plain), nil
}

// pad appends PKCS#7 padding. A full block is added when data is
// already aligned.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrInvalidPadding
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}

	return data[:len(data)-n], nil
}
