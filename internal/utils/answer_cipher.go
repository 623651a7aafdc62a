package utils

// Security answers are stored AES-encrypted.  Two wire formats exist in
// the database and both must stay readable:
//
//   legacy:  base64(AES-ECB(staticKey, answer left-padded with spaces to 32 bytes))
//   current: base64(IV[16] || AES-CBC(key, PKCS#7(answer)))
//
// The decoder picks the format by structure: any blob longer than 32
// bytes can only be the current format, and a 32-byte blob is treated as
// current when the CBC decryption yields valid PKCS#7 padding, falling
// back to the legacy shape otherwise.  The legacy path only accepts
// blocks that decrypt to valid UTF-8 text.  Every failure mode (bad
// base64, wrong length, bad padding, wrong key, non-text legacy
// output) collapses into the same "no match" result so a caller cannot
// tell a crypto fault from a wrong answer.

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// legacyAnswerKey is the fixed key the historical system encrypted with.
// Rows written by it can only be recovered with this exact key.
var legacyAnswerKey = []byte("1234567890123456")

const legacyAnswerBlock = 32

// EncryptAnswer encrypts a security answer with the current scheme and
// returns the base64 blob to store.
func EncryptAnswer(plain string, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	padded := padPKCS7([]byte(plain), aes.BlockSize)
	buf := make([]byte, aes.BlockSize+len(padded))
	iv := buf[:aes.BlockSize]
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(buf[aes.BlockSize:], padded)
	return base64.StdEncoding.EncodeToString(buf), nil
}

// EncryptAnswerLegacy reproduces the historical ECB scheme.  It exists so
// previously stored rows can be reconstructed in tests and migrations;
// new rows are always written with EncryptAnswer.
func EncryptAnswerLegacy(plain string) (string, error) {
	if len(plain) > legacyAnswerBlock {
		plain = plain[:legacyAnswerBlock]
	}
	padded := []byte(strings.Repeat(" ", legacyAnswerBlock-len(plain)) + plain)
	block, err := aes.NewCipher(legacyAnswerKey)
	if err != nil {
		return "", err
	}
	out := make([]byte, legacyAnswerBlock)
	for i := 0; i < legacyAnswerBlock; i += aes.BlockSize {
		block.Encrypt(out[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptAnswer recovers the plaintext answer from either wire format.
// The boolean is false whenever the blob cannot be decoded; an empty
// answer decodes to ("", true) and is therefore distinguishable from a
// failure.
func DecryptAnswer(enc string, key []byte) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", false
	}
	if len(raw) < 2*aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return "", false
	}
	if len(raw) > 2*aes.BlockSize {
		return decryptCurrent(raw, key)
	}
	// 32 bytes fits both shapes: a current blob with a single ciphertext
	// block, or a legacy block pair.  The strict padding check decides.
	if plain, ok := decryptCurrent(raw, key); ok {
		return plain, true
	}
	return decryptLegacy(raw)
}

func decryptCurrent(raw, key []byte) (string, bool) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", false
	}
	iv, ct := raw[:aes.BlockSize], raw[aes.BlockSize:]
	dec := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(dec, ct)
	plain, ok := unpadPKCS7(dec, aes.BlockSize)
	if !ok {
		return "", false
	}
	return string(plain), true
}

func decryptLegacy(raw []byte) (string, bool) {
	block, err := aes.NewCipher(legacyAnswerKey)
	if err != nil {
		return "", false
	}
	dec := make([]byte, len(raw))
	for i := 0; i < len(raw); i += aes.BlockSize {
		block.Decrypt(dec[i:i+aes.BlockSize], raw[i:i+aes.BlockSize])
	}
	// A genuine legacy block decrypts to space-padded text.  Anything
	// that is not valid UTF-8 never came from the legacy writer, so it
	// reports no match instead of surfacing key-stream garbage.
	if !utf8.Valid(dec) {
		return "", false
	}
	return strings.TrimLeft(string(dec), " "), true
}

func padPKCS7(b []byte, size int) []byte {
	n := size - len(b)%size
	out := make([]byte, len(b)+n)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func unpadPKCS7(b []byte, size int) ([]byte, bool) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n < 1 || n > size || n > len(b) {
		return nil, false
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
