package config

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// ErrAuthDisabled means no public key is configured and write requests
// are accepted without a token.
var ErrAuthDisabled = errors.New("no JWT public key configured")

type JWT struct {
	publicKey     *rsa.PublicKey
	signingMethod jwt.SigningMethod
}

func loadPublicKey() (*rsa.PublicKey, error) {
	if publicKeyStr, ok := os.LookupEnv("JWT_PUBLIC_KEY"); ok {
		return jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyStr))
	}
	publicKeyPath, ok := os.LookupEnv("JWT_PUBLIC_KEY_FILE")
	if !ok {
		return nil, ErrAuthDisabled
	}
	publicKeyBytes, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read JWT public key: %w", err)
	}
	return jwt.ParseRSAPublicKeyFromPEM(publicKeyBytes)
}

func NewJWT() (*JWT, error) {
	publicKey, err := loadPublicKey()
	if err != nil {
		return nil, err
	}
	return NewJWTWithKey(publicKey), nil
}

func NewJWTWithKey(publicKey *rsa.PublicKey) *JWT {
	return &JWT{
		publicKey:     publicKey,
		signingMethod: jwt.SigningMethodRS256,
	}
}

// Verify parses an RS256 token and checks its signature and expiry.
func (j *JWT) Verify(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.publicKey, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
