package auth

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenProvider produces a short-lived signed bearer credential. Tokens
// are minted per request and never cached here; each one is valid for
// the duration of a single operation.
type TokenProvider interface {
	Generate() (string, error)
}

// ConnectTokenProvider mints ES256 JWTs for the App Store Connect API.
type ConnectTokenProvider struct {
	issuerID string
	keyID    string
	key      *ecdsa.PrivateKey
	ttl      time.Duration
}

// NewConnectTokenProvider loads the signing key from a PEM file and
// returns a provider for the given issuer/key pair.
func NewConnectTokenProvider(issuerID, keyID, privateKeyPath string, ttl time.Duration) (*ConnectTokenProvider, error) {
	if issuerID == "" || keyID == "" {
		return nil, fmt.Errorf("issuer id and key id are required")
	}
	pemBytes, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	key, err := jwt.ParseECPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ConnectTokenProvider{
		issuerID: issuerID,
		keyID:    keyID,
		key:      key,
		ttl:      ttl,
	}, nil
}

// Generate mints a fresh signed token.
func (p *ConnectTokenProvider) Generate() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": p.issuerID,
		"iat": now.Unix(),
		"exp": now.Add(p.ttl).Unix(),
		"aud": "appstoreconnect-v1",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = p.keyID

	signed, err := token.SignedString(p.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// StaticTokenProvider returns a fixed token. Used by tests and local
// setups where a token is minted out of band.
type StaticTokenProvider struct {
	Token string
}

// Generate returns the configured token.
func (p *StaticTokenProvider) Generate() (string, error) {
	if p.Token == "" {
		return "", fmt.Errorf("no bearer token configured")
	}
	return p.Token, nil
}
