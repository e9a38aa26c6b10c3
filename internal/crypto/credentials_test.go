package crypto

import (
	"errors"
	"testing"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	svc := NewCredentialService()

	cases := []struct {
		name       string
		plaintext  string
		passphrase string
	}{
		{"short", "1234", "longpw12"},
		{"empty plaintext", "", "longpw12"},
		{"unicode", "पारिवारिक रहस्य", "correct horse battery staple"},
		{"long", string(make([]byte, 4096)), "k"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blob, err := svc.Encrypt(tc.plaintext, tc.passphrase)
			if err != nil {
				t.Fatalf("Encrypt error: %v", err)
			}

			got, err := svc.Decrypt(blob, tc.passphrase)
			if err != nil {
				t.Fatalf("Decrypt error: %v", err)
			}
			if got != tc.plaintext {
				t.Fatalf("round trip mismatch: got %q, want %q", got, tc.plaintext)
			}
		})
	}
}

func TestEncrypt_Randomised(t *testing.T) {
	svc := NewCredentialService()

	b1, err := svc.Encrypt("secret", "pass")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	b2, err := svc.Encrypt("secret", "pass")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if b1 == b2 {
		t.Fatalf("expected distinct blobs for the same input, got equal")
	}
}

func TestDecrypt_WrongPassphrase(t *testing.T) {
	svc := NewCredentialService()

	blob, err := svc.Encrypt("family-secret", "right-passphrase")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	_, err = svc.Decrypt(blob, "wrong-passphrase")
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("Decrypt error = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecrypt_GarbageInput(t *testing.T) {
	svc := NewCredentialService()

	for _, blob := range []string{"", "not-base64!!!", "c2hvcnQ="} {
		_, err := svc.Decrypt(blob, "anything")
		if !errors.Is(err, ErrDecryptionFailed) {
			t.Fatalf("Decrypt(%q) error = %v, want ErrDecryptionFailed", blob, err)
		}
	}
}

func TestHashVerifyPassword(t *testing.T) {
	svc := NewCredentialService()

	hash, err := svc.HashPassword("longpw12")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "longpw12" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !svc.VerifyPassword("longpw12", hash) {
		t.Fatalf("VerifyPassword = false for the matching password")
	}
	if svc.VerifyPassword("longpw13", hash) {
		t.Fatalf("VerifyPassword = true for a non-matching password")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	svc := NewCredentialService()

	// Must return false, never panic or error, per the service contract.
	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$broken"} {
		if svc.VerifyPassword("anything", hash) {
			t.Fatalf("VerifyPassword(%q) = true, want false", hash)
		}
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	svc := NewCredentialService()

	h1, err := svc.HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := svc.HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("expected distinct hashes for the same password, got equal")
	}
}
