package firebase

import (
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

// Google publishes the signing keys for Firebase ID tokens as a JWKS.
const firebaseJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// TokenVerifier validates Firebase ID tokens locally against Google's JWKS.
// It exists for the websocket upgrade path, where a round trip through the
// Admin SDK per connection attempt is unnecessary latency.
type TokenVerifier struct {
	projectID string
	jwks      *keyfunc.JWKS
}

func NewTokenVerifier(projectID string) (*TokenVerifier, error) {
	jwks, err := keyfunc.Get(firebaseJWKSURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load firebase JWKS: %w", err)
	}

	return &TokenVerifier{
		projectID: projectID,
		jwks:      jwks,
	}, nil
}

// Verify checks the token signature and the standard Firebase claims and
// returns the subject UID.
func (v *TokenVerifier) Verify(idToken string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(idToken, &claims, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	expectedIssuer := "https://securetoken.google.com/" + v.projectID
	if claims.Issuer != expectedIssuer {
		return "", fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	if len(claims.Audience) == 0 || claims.Audience[0] != v.projectID {
		return "", fmt.Errorf("unexpected audience")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token missing subject")
	}

	return claims.Subject, nil
}

func (v *TokenVerifier) Close() {
	v.jwks.EndBackground()
}
