// Package encoding seals small values into URL- and attribute-safe tokens.
//
// Values are packed with msgpack and then either signed (visible but
// tamper-proof) or encrypted (opaque). The page host uses it for the
// loaded-asset manifest it hands to the browser.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned by Decode. Callers match with errors.Is.
var (
	ErrEmptyKey         = errors.New("encoding: empty key")
	ErrInvalidFormat    = errors.New("encoding: invalid token format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

// sigLen is the truncated HMAC-SHA256 length in bytes.
const sigLen = 16

// Encoder seals values in one of two modes:
//   - Signed (default): base64(msgpack) + "." + base64(hmac), readable by clients
//   - Encrypted: base64(nonce || AES-256-GCM ciphertext), fully opaque
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates an encoder. Keys that are not exactly 32 bytes are
// stretched to 32 with SHA-256.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	if len(key) != 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Encoder{key: key, gcm: gcm}, nil
}

// Encodable is implemented by types that flatten themselves to a map before
// packing. Other values are packed with msgpack's reflection encoder.
type Encodable interface {
	EncodeFields() map[string]any
}

// Decodable is the counterpart of Encodable.
type Decodable interface {
	DecodeFields(map[string]any) error
}

// Encode packs v and returns a token. If sensitive is true the token is
// encrypted; otherwise it is signed.
func (e *Encoder) Encode(v any, sensitive bool) (string, error) {
	var (
		packed []byte
		err    error
	)
	if enc, ok := v.(Encodable); ok {
		packed, err = msgpack.Marshal(enc.EncodeFields())
	} else {
		packed, err = msgpack.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("encoding: pack: %w", err)
	}

	if sensitive {
		return e.encrypt(packed)
	}
	return e.sign(packed), nil
}

// Decode opens token and unpacks it into v, which must be a pointer or a
// Decodable. sensitive must match the mode the token was encoded with.
func (e *Encoder) Decode(token string, sensitive bool, v any) error {
	var (
		packed []byte
		err    error
	)
	if sensitive {
		packed, err = e.decrypt(token)
	} else {
		packed, err = e.verify(token)
	}
	if err != nil {
		return err
	}

	if dec, ok := v.(Decodable); ok {
		var data map[string]any
		if err := msgpack.Unmarshal(packed, &data); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		return dec.DecodeFields(data)
	}
	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return nil
}

func (e *Encoder) mac(data []byte) []byte {
	m := hmac.New(sha256.New, e.key)
	m.Write(data)
	return m.Sum(nil)[:sigLen]
}

func (e *Encoder) sign(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(e.mac(data))
}

func (e *Encoder) verify(token string) ([]byte, error) {
	body, sig, ok := strings.Cut(token, ".")
	if !ok {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidFormat)
	}

	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	if !hmac.Equal(got, e.mac(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := e.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (e *Encoder) decrypt(token string) ([]byte, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	n := e.gcm.NonceSize()
	if len(sealed) < n {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrInvalidFormat)
	}

	data, err := e.gcm.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return data, nil
}
