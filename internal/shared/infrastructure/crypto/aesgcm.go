// Package crypto seals free-text fields before they are stored.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"strings"
)

// SealedPrefix marks a stored value produced by SealString.
const SealedPrefix = "enc:v1:"

var (
	ErrEmptyKey           = errors.New("encryption key is empty")
	ErrKeyLength          = errors.New("encryption key must be 32 bytes")
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// TextSealer seals and opens stored text.
type TextSealer interface {
	SealString(plaintext string) (string, error)
	OpenString(stored string) (string, error)
}

// AESSealer uses AES-256-GCM with a random nonce per value.
type AESSealer struct {
	aead cipher.AEAD
}

// NewAESSealerFromBase64Key creates an AESSealer from a base64-encoded 32-byte key.
func NewAESSealerFromBase64Key(encodedKey string) (*AESSealer, error) {
	if encodedKey == "" {
		return nil, ErrEmptyKey
	}
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, ErrKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESSealer{aead: aead}, nil
}

// Seal encrypts plaintext and prepends the nonce.
func (s *AESSealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a nonce-prefixed ciphertext.
func (s *AESSealer) Open(ciphertext []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrCiphertextTooShort
	}
	return s.aead.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], nil)
}

// SealString returns SealedPrefix followed by the base64 ciphertext.
// Empty input stays empty.
func (s *AESSealer) SealString(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	sealed, err := s.Seal([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return SealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenString reverses SealString. Values without SealedPrefix were stored
// before a key was configured and are returned as is.
func (s *AESSealer) OpenString(stored string) (string, error) {
	encoded, ok := strings.CutPrefix(stored, SealedPrefix)
	if !ok {
		return stored, nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	plain, err := s.Open(raw)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// PlainText is the TextSealer used when no key is configured.
type PlainText struct{}

func (PlainText) SealString(plaintext string) (string, error) { return plaintext, nil }

// OpenString refuses sealed values, since there is no key to open them.
func (PlainText) OpenString(stored string) (string, error) {
	if strings.HasPrefix(stored, SealedPrefix) {
		return "", errors.New("value is encrypted but no encryption key is configured")
	}
	return stored, nil
}
