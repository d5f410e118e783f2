// Package token seals progression state into an opaque, tamper-evident
// cookie value and opens it again.
package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/playperu/questhunt/internal/questhunt"
)

// ErrDecode is returned when a token cannot be opened: bad transport
// encoding, failed decryption, or a payload that is not a valid state
// record. A failed decode never yields a partial state.
var ErrDecode = errors.New("malformed state token")

// KeySize is the required key length. AES-256 only.
const KeySize = 32

// Codec seals and opens progression state with AES-GCM under a fixed
// server-held key. Safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
}

// record is the canonical wire form of a state. Field names are kept
// short: the whole record rides in a cookie on every request.
type record struct {
	Scenario  string `json:"s"`
	Quest     int    `json:"q"`
	Deadline  *int64 `json:"d,omitempty"`
	StartedAt int64  `json:"t"`
	PlayerID  string `json:"p"`
	Restarts  int    `json:"r"`
}

// NewCodec builds a codec from a raw key. The key length is a startup
// invariant: anything but KeySize bytes is a configuration error.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("state token key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Encode serializes s and seals it. The payload is nonce || ciphertext,
// raw-URL base64 so it can travel as a cookie value. A fresh random
// nonce is used per call, so encoding the same state twice yields
// different tokens that open to equal states.
func (c *Codec) Encode(s questhunt.State) (string, error) {
	rec := record{
		Scenario:  s.Scenario,
		Quest:     s.Quest,
		StartedAt: s.StartedAt.UnixMilli(),
		PlayerID:  s.PlayerID,
		Restarts:  s.Restarts,
	}
	if s.Deadline != nil {
		d := s.Deadline.UnixMilli()
		rec.Deadline = &d
	}

	plaintext, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}

	ciphertext := c.aead.Seal(nil, nonce, plaintext, nil)
	payload := append(nonce, ciphertext...)
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Decode opens a sealed token and validates the record.
func (c *Codec) Decode(tok string) (questhunt.State, error) {
	payload, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		return questhunt.State{}, fmt.Errorf("%w: transport encoding: %v", ErrDecode, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(payload) < nonceSize {
		return questhunt.State{}, fmt.Errorf("%w: payload too short", ErrDecode)
	}
	plaintext, err := c.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], nil)
	if err != nil {
		return questhunt.State{}, fmt.Errorf("%w: decrypt: %v", ErrDecode, err)
	}

	var rec record
	if err := json.Unmarshal(plaintext, &rec); err != nil {
		return questhunt.State{}, fmt.Errorf("%w: unmarshal: %v", ErrDecode, err)
	}
	if rec.Scenario == "" || rec.PlayerID == "" || rec.Quest < 0 || rec.Restarts < 0 {
		return questhunt.State{}, fmt.Errorf("%w: invalid state record", ErrDecode)
	}

	s := questhunt.State{
		Scenario:  rec.Scenario,
		Quest:     rec.Quest,
		StartedAt: time.UnixMilli(rec.StartedAt).UTC(),
		PlayerID:  rec.PlayerID,
		Restarts:  rec.Restarts,
	}
	if rec.Deadline != nil {
		d := time.UnixMilli(*rec.Deadline).UTC()
		s.Deadline = &d
	}
	return s, nil
}

// DecodeLenient opens a token like Decode but maps every failure, and
// an empty token, to "no prior state". Used on entry points where a
// missing or garbled cookie means a fresh player, not an error.
func (c *Codec) DecodeLenient(tok string) *questhunt.State {
	if tok == "" {
		return nil
	}
	s, err := c.Decode(tok)
	if err != nil {
		return nil
	}
	return &s
}
