package snapshot

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/andy/ledgercraft/internal/domain"
)

const (
	pbkdf2Iterations = 100000
	saltSize         = 16
	ivSize           = 12
	keySize          = 32 // AES-256
)

// Envelope is the encrypted-export wire format: AES-256-GCM ciphertext
// plus the salt and iv needed to reverse it, each base64-encoded.
type Envelope struct {
	Cipher string `json:"cipher"`
	Salt   string `json:"salt"`
	IV     string `json:"iv"`
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keySize, sha256.New)
}

// EncodeEncrypted serializes the ledger and wraps it in a password-derived
// AES-256-GCM envelope. A failure aborts the export with no partial output.
func EncodeEncrypted(l *domain.Ledger, password string) ([]byte, error) {
	plain, err := Encode(l)
	if err != nil {
		return nil, err
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("encryption unavailable: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encryption unavailable: %w", err)
	}

	env := Envelope{
		Cipher: base64.StdEncoding.EncodeToString(gcm.Seal(nil, iv, plain, nil)),
		Salt:   base64.StdEncoding.EncodeToString(salt),
		IV:     base64.StdEncoding.EncodeToString(iv),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode envelope: %w", err)
	}
	return data, nil
}

// DecodeEncrypted opens an encrypted envelope with the given password. A
// wrong password or tampered ciphertext fails the GCM tag check and
// returns ErrBadPassword; a structurally broken payload returns
// ErrMalformedEnvelope. Either way the caller's state is untouched.
func DecodeEncrypted(data []byte, password string) (*domain.Ledger, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Cipher == "" || env.Salt == "" || env.IV == "" {
		return nil, fmt.Errorf("%w: missing cipher, salt, or iv", ErrMalformedEnvelope)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.Cipher)
	if err != nil {
		return nil, fmt.Errorf("%w: bad cipher encoding", ErrMalformedEnvelope)
	}
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: bad salt encoding", ErrMalformedEnvelope)
	}
	iv, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: bad iv encoding", ErrMalformedEnvelope)
	}
	if len(iv) != ivSize {
		return nil, fmt.Errorf("%w: iv must be %d bytes", ErrMalformedEnvelope, ivSize)
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("decryption unavailable: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("decryption unavailable: %w", err)
	}

	plain, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrBadPassword
	}
	return Decode(plain)
}
