// internal/registry/signer.go
//
// Tamper-evident widget keys.
//
// Context
// -------
// Every heavy widget render stores its spec in the shared cache and hands
// the browser an opaque handle (`data-field_id`).  The handle must be safe
// to embed in an HTML attribute, unguessable, and unforgeable: the Ajax
// view trusts it to select which widget spec to load.  We sign a random
// 16-byte id rather than deriving anything from process memory, so handles
// survive restarts and work across processes sharing one cache:
//
//	token = base64url( id | HMAC_SHA256(secret, id) )
//
// Verification recomputes the HMAC with a constant-time compare.  A failed
// verify is reported as (id="", ok=false); callers treat it as a miss and
// must not leak whether the token was malformed or merely expired.

package registry

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const idBytes = 16

// Signer issues and verifies signed widget keys.  The zero value is not
// usable; construct with NewSigner.
type Signer struct {
	secret []byte
}

// NewSigner builds a Signer from the configured key.  When key is empty a
// random ephemeral secret is generated; outstanding tokens then die with
// the process, which only costs clients a re-render.
func NewSigner(key []byte) (*Signer, error) {
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("registry: generate signing key: %w", err)
		}
	}
	if len(key) < 16 {
		return nil, fmt.Errorf("registry: signing key too short (%d bytes, want ≥16)", len(key))
	}
	return &Signer{secret: key}, nil
}

// NewID returns a fresh random widget id in hex form.  The hex string is
// the cache-key component; the raw bytes are what gets signed.
func (s *Signer) NewID() (string, error) {
	raw := make([]byte, idBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("registry: generate widget id: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// Sign wraps a hex widget id into an attribute-safe signed token.
func (s *Signer) Sign(id string) (string, error) {
	raw, err := hex.DecodeString(id)
	if err != nil || len(raw) != idBytes {
		return "", fmt.Errorf("registry: malformed widget id %q", id)
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(raw)
	sig := mac.Sum(nil)

	buf := make([]byte, 0, idBytes+sha256.Size)
	buf = append(buf, raw...)
	buf = append(buf, sig...)
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify checks a token and returns the embedded hex id.  ok is false on
// any decode or signature failure.
func (s *Signer) Verify(token string) (id string, ok bool) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != idBytes+sha256.Size {
		return "", false
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(raw[:idBytes])
	want := mac.Sum(nil)

	if !hmac.Equal(raw[idBytes:], want) {
		return "", false
	}
	return hex.EncodeToString(raw[:idBytes]), true
}
