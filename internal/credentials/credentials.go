// Package credentials holds decoded API credentials for the lifetime of a client.
package credentials

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"strings"

	"krakenbridge/pkg/core"
)

// Secret is a decoded private key. It never prints its contents.
type Secret struct {
	key []byte
}

// ParseSecret decodes a standard-alphabet base64 secret.
func ParseSecret(b64 string) (Secret, error) {
	b64 = strings.TrimSpace(b64)
	if b64 == "" {
		return Secret{}, core.NewConfigurationError(core.ErrCodeInvalidSecret, "secret is empty")
	}
	key, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return Secret{}, core.NewConfigurationError(core.ErrCodeInvalidSecret, "secret is not valid base64").
			WithCause(err)
	}
	return Secret{key: key}, nil
}

// HMACSHA512 returns HMAC-SHA512 keyed with the secret over the concatenation of parts.
func (s Secret) HMACSHA512(parts ...[]byte) []byte {
	mac := hmac.New(sha512.New, s.key)
	for _, p := range parts {
		mac.Write(p)
	}
	return mac.Sum(nil)
}

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool {
	return len(s.key) == 0
}

func (s Secret) String() string {
	return "****"
}

// Credentials is an immutable API key / secret pair.
type Credentials struct {
	apiKey string
	secret Secret
}

// New validates and decodes c. A nil value, a missing field or an undecodable
// secret are configuration faults.
func New(c *core.Credentials) (*Credentials, error) {
	if c == nil {
		return nil, core.NewConfigurationError(core.ErrCodeNoCredentials, "api credentials are not configured").
			WithCause(core.ErrNoCredentials)
	}
	apiKey := strings.TrimSpace(c.APIKey)
	if apiKey == "" || strings.TrimSpace(c.Secret) == "" {
		return nil, core.NewConfigurationError(core.ErrCodeNoCredentials, "both api key and secret are required").
			WithCause(core.ErrNoCredentials)
	}
	secret, err := ParseSecret(c.Secret)
	if err != nil {
		return nil, err
	}
	return &Credentials{apiKey: apiKey, secret: secret}, nil
}

// APIKey returns the public key identifier sent in the API-Key header.
func (c *Credentials) APIKey() string {
	return c.apiKey
}

// Secret returns the decoded signing secret.
func (c *Credentials) Secret() Secret {
	return c.secret
}

func (c *Credentials) String() string {
	return fmt.Sprintf("Credentials{APIKey:%s}", maskKey(c.apiKey))
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
