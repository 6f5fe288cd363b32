// Package auth verifies the HS256 bearer tokens accepted in place of the
// userId parameter. There is no login flow; tokens are minted by SignJWT for
// local tooling and tests.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Issuer is stamped on minted tokens and enforced when a token carries one.
const Issuer = "recruitedge"

const (
	defaultTTL = 24 * time.Hour
	clockSkew  = 30 * time.Second
)

// Claims is the subset of a bearer token the API reads. Sub is the userId;
// Role is informational (job-seeker, recruiter or admin).
type Claims struct {
	Sub  string `json:"sub"`
	Role string `json:"role,omitempty"`
	Iss  string `json:"iss,omitempty"`
	Exp  int64  `json:"exp,omitempty"`
	Iat  int64  `json:"iat,omitempty"`
}

var (
	errMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
	// ErrExpiredToken wraps ErrInvalidToken.
	ErrExpiredToken = fmt.Errorf("%w: expired", ErrInvalidToken)
)

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ,omitempty"`
}

// SignJWT signs claims with HS256, filling iss, iat and a 24h exp when unset.
func SignJWT(claims Claims) (string, error) {
	secret, err := secretKey()
	if err != nil {
		return "", err
	}
	if claims.Sub == "" {
		return "", errors.New("sub is required")
	}

	now := time.Now().UTC()
	if claims.Iss == "" {
		claims.Iss = Issuer
	}
	if claims.Iat == 0 {
		claims.Iat = now.Unix()
	}
	if claims.Exp == 0 {
		claims.Exp = now.Add(defaultTTL).Unix()
	}

	head, err := encodeSegment(header{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", err
	}
	body, err := encodeSegment(claims)
	if err != nil {
		return "", err
	}
	signingInput := head + "." + body
	return signingInput + "." + sign(signingInput, secret), nil
}

// VerifyJWT checks the signature, issuer and expiry and returns the claims.
func VerifyJWT(token string) (Claims, error) {
	secret, err := secretKey()
	if err != nil {
		return Claims{}, err
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	var head header
	if err := decodeSegment(parts[0], &head); err != nil || head.Alg != "HS256" {
		return Claims{}, ErrInvalidToken
	}
	expected := sign(parts[0]+"."+parts[1], secret)
	if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := decodeSegment(parts[1], &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Sub) == "" {
		return Claims{}, ErrInvalidToken
	}
	if claims.Iss != "" && claims.Iss != Issuer {
		return Claims{}, ErrInvalidToken
	}
	if claims.Exp > 0 && time.Now().UTC().Add(-clockSkew).Unix() > claims.Exp {
		return Claims{}, ErrExpiredToken
	}
	return claims, nil
}

func encodeSegment(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeSegment(seg string, dst any) error {
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func sign(input string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// secretKey reads JWT_SECRET. Only production refuses the dev fallback.
func secretKey() ([]byte, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret != "" {
		return []byte(secret), nil
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))) {
	case "production", "prod":
		return nil, fmt.Errorf("%w: JWT_SECRET required in production", errMissingSecret)
	}
	return []byte("recruitedge-dev-secret"), nil
}
