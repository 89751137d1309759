package kraken

import (
	"crypto/sha256"
	"encoding/base64"

	"krakenbridge/internal/credentials"
	"krakenbridge/pkg/core"
)

// Signer computes the API-Sign header:
//
//	base64(HMAC-SHA512(secret, path || SHA256(nonce || body)))
//
// where body is the form-encoded payload, nonce included.
type Signer struct {
	secret credentials.Secret
}

func newSigner(secret credentials.Secret) *Signer {
	return &Signer{secret: secret}
}

// Sign returns the signature and the exact body that was signed. The body
// must be sent unmodified. payload must carry a nonce.
func (s *Signer) Sign(path string, payload *core.Payload) (signature, body string, err error) {
	nonce, ok := payload.Get("nonce")
	if !ok || nonce == "" {
		return "", "", core.NewValidationError(core.ErrCodeInvalidParams, "nonce", "payload has no nonce").
			WithPath(path)
	}

	body = payload.Encode()
	sha := sha256.Sum256([]byte(nonce + body))
	mac := s.secret.HMACSHA512([]byte(path), sha[:])
	return base64.StdEncoding.EncodeToString(mac), body, nil
}
