// Package models defines types shared across internal packages.
package models

import "time"

// TokenRecord is the stored result of one successful login callback.
// EncryptedToken is the hex AES ciphertext of the page access token,
// decryptable with the key derived from HashKey and the process
// encryption key.
type TokenRecord struct {
	UserID         string    `json:"user_id"`
	EncryptedToken string    `json:"encrypted_token"`
	HashKey        string    `json:"hash_key"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Timestamp      time.Time `json:"timestamp"`
}
