package crypto

// CredentialService owns every cryptographic primitive the backend needs:
// one-way password hashing for login verification and reversible,
// passphrase-keyed encryption for the shared family password.
//
// It knows nothing about users, families, or the network. Callers treat it
// as a black box with two contracts:
//
//   - VerifyPassword(p, HashPassword(p)) is true, comparison is
//     constant-time, and a malformed or empty stored hash yields false,
//     never an error.
//   - Decrypt(Encrypt(p, k), k) == p, and Decrypt with the wrong passphrase
//     fails with ErrDecryptionFailed rather than returning garbage.
type CredentialService interface {
	// HashPassword derives a salted one-way hash of plaintext suitable
	// for storage.
	HashPassword(plaintext string) (string, error)

	// VerifyPassword reports whether plaintext matches the stored hash.
	VerifyPassword(plaintext, hash string) bool

	// Encrypt seals plaintext under a key derived from passphrase and
	// returns a self-contained base64 blob.
	Encrypt(plaintext, passphrase string) (string, error)

	// Decrypt reverses Encrypt. It returns ErrDecryptionFailed when the
	// passphrase is wrong or the blob has been tampered with.
	Decrypt(ciphertext, passphrase string) (string, error)
}
