package crypto

import "errors"

// ErrDecryptionFailed is returned by Decrypt when the ciphertext cannot be
// authenticated: a wrong passphrase, a truncated blob, or tampering. Callers
// rely on this sentinel to turn a wrong admin password into a clean
// authentication failure instead of corrupt output.
var ErrDecryptionFailed = errors.New("decryption failed")
