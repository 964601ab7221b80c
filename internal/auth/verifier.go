package auth

import (
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// Verifier extracts a user identity from a bearer token.
//
// With a JWKS URL configured, token signatures are verified against the
// identity provider's published keys and audience/issuer mismatches are
// rejected. Without one the verifier runs in legacy mode: the payload is
// decoded without signature verification, expiry is enforced, and
// audience/issuer mismatches are logged but tolerated.
type Verifier struct {
	jwks     *keyfunc.JWKS
	audience string
	issuer   string
	logger   *logrus.Logger
}

// Options configures a Verifier.
type Options struct {
	JWKSURL  string
	Audience string
	Issuer   string
}

// NewVerifier creates a Verifier. Fetching the JWKS fails fast so a typo'd
// URL is caught at startup rather than on the first request.
func NewVerifier(opts Options, logger *logrus.Logger) (*Verifier, error) {
	v := &Verifier{
		audience: opts.Audience,
		issuer:   opts.Issuer,
		logger:   logger,
	}

	if opts.JWKSURL == "" {
		logger.Warn("AUTH_JWKS_URL not set: bearer tokens are decoded without signature verification")
		return v, nil
	}

	jwks, err := keyfunc.Get(opts.JWKSURL, keyfunc.Options{
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			logger.WithError(err).Error("failed to refresh JWKS")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", opts.JWKSURL, err)
	}
	v.jwks = jwks
	return v, nil
}

// UserID returns the subject of a valid bearer token, or an error when the
// token cannot be trusted.
func (v *Verifier) UserID(tokenString string) (string, error) {
	if v.jwks != nil {
		return v.verifiedUserID(tokenString)
	}
	return v.decodedUserID(tokenString)
}

func (v *Verifier) verifiedUserID(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.jwks.Keyfunc)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		return "", fmt.Errorf("token audience mismatch")
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return "", fmt.Errorf("token issuer mismatch")
	}
	return subject(claims)
}

// decodedUserID trusts the token payload without checking its signature.
// Expiry is still enforced; audience and issuer mismatches are treated as
// configuration drift and only logged.
func (v *Verifier) decodedUserID(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("malformed token: %w", err)
	}

	if !claims.VerifyExpiresAt(time.Now().Unix(), false) {
		return "", fmt.Errorf("token expired")
	}

	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		v.logger.WithField("expected", v.audience).Warn("token audience mismatch, accepting anyway")
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		v.logger.WithField("expected", v.issuer).Warn("token issuer mismatch, accepting anyway")
	}
	return subject(claims)
}

func subject(claims jwt.MapClaims) (string, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}
