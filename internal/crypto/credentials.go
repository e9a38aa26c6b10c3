package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const saltSize = 16

// credentialService is the private implementation of [CredentialService].
type credentialService struct {
	// Argon2id tuning parameters for the passphrase-derived encryption
	// key. Stored in the struct so they can be adjusted per deployment
	// target without touching the encryption format.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32

	// bcryptCost controls the work factor of one-way password hashes.
	bcryptCost int
}

// NewCredentialService constructs a [CredentialService] with the Argon2id
// parameters recommended by OWASP (2024) and the default bcrypt cost:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewCredentialService() CredentialService {
	return &credentialService{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
		bcryptCost:   bcrypt.DefaultCost,
	}
}

// HashPassword implements [CredentialService] using bcrypt. The salt is
// embedded in the returned hash string.
func (c *credentialService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword implements [CredentialService]. bcrypt's comparison is
// constant-time with respect to the candidate. A malformed or empty stored
// hash simply fails the comparison and yields false.
func (c *credentialService) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Encrypt implements [CredentialService]. It derives a 256-bit key from
// passphrase and a fresh random salt using Argon2id, then seals plaintext
// with AES-256-GCM. The output is a Base64 (standard encoding) string of the
// blob: salt (16 bytes) ‖ nonce (12 bytes) ‖ ciphertext, so the blob is
// self-contained and Decrypt needs only the passphrase.
func (c *credentialService) Encrypt(plaintext, passphrase string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := c.aead(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	blob := make([]byte, 0, len(salt)+len(nonce)+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [CredentialService]. It splits the blob produced by
// Encrypt into salt, nonce, and ciphertext, re-derives the key from
// passphrase, and opens the ciphertext.
//
// An authentication-tag mismatch almost always means the caller supplied the
// wrong passphrase; that case, along with truncated or undecodable blobs, is
// reported as [ErrDecryptionFailed] so callers can map it to an
// authentication failure.
func (c *credentialService) Decrypt(ciphertext, passphrase string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %w", ErrDecryptionFailed, err)
	}

	if len(blob) < saltSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}
	salt, rest := blob[:saltSize], blob[saltSize:]

	gcm, err := c.aead(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}
	nonce, sealed := rest[:nonceSize], rest[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

// aead builds an AES-256-GCM cipher keyed by Argon2id(passphrase, salt).
func (c *credentialService) aead(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(
		[]byte(passphrase),
		salt,
		c.argonTime,
		c.argonMemory,
		c.argonThreads,
		c.argonKeyLen,
	)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
