// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec holds password hashing, roles and the RS256 access tokens that the
// shelf client carries as its opaque auth token.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// clockSkew tolerated when checking exp and iat.
const clockSkew = 30 * time.Second

// AuthClaims is the access token payload. The middleware rebuilds the caller
// from it without touching the database.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// TokenService signs and verifies access tokens with one RSA key pair.
type TokenService struct {
	signKey   *rsa.PrivateKey
	verifyKey *rsa.PublicKey
	issuer    string
	parser    *jwt.Parser
}

// NewTokenService loads a PEM key pair from disk.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	signKey, err := readPEM(privateKeyPath, jwt.ParseRSAPrivateKeyFromPEM)
	if err != nil {
		return nil, err
	}
	verifyKey, err := readPEM(publicKeyPath, jwt.ParseRSAPublicKeyFromPEM)
	if err != nil {
		return nil, err
	}
	return NewTokenServiceFromKeys(signKey, verifyKey, issuer), nil
}

// NewTokenServiceFromKeys builds a TokenService from parsed keys.
func NewTokenServiceFromKeys(signKey *rsa.PrivateKey, verifyKey *rsa.PublicKey, issuer string) *TokenService {
	return &TokenService{
		signKey:   signKey,
		verifyKey: verifyKey,
		issuer:    issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

// GenerateAccessToken signs a token for the user valid for ttl.
func (s *TokenService) GenerateAccessToken(userID, username, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("token_sign_failed: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature, issuer and expiry and returns the claims.
func (s *TokenService) VerifyToken(raw string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	if _, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.verifyKey, nil
	}); err != nil {
		return nil, fmt.Errorf("token_invalid: %w", err)
	}
	if claims.UserID == "" {
		return nil, errors.New("token_invalid: missing user id")
	}
	return claims, nil
}

func readPEM[K any](path string, parse func([]byte) (K, error)) (K, error) {
	var zero K
	raw, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("token_key_read_failed: %w", err)
	}
	key, err := parse(raw)
	if err != nil {
		return zero, fmt.Errorf("token_key_parse_failed %s: %w", path, err)
	}
	return key, nil
}
