package rtc

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingCredentials = errors.New("rtc api key/secret not configured")

// VideoGrant mirrors the room permissions block of the transport's access
// token format.
type VideoGrant struct {
	Room     string `json:"room"`
	RoomJoin bool   `json:"roomJoin"`
}

// Claims is the signed token payload: identity plus a room grant.
type Claims struct {
	Video VideoGrant `json:"video"`
	jwt.RegisteredClaims
}

// TokenIssuer signs short-lived access tokens for the real-time audio/video
// transport.
type TokenIssuer struct {
	apiKey    string
	apiSecret string
	url       string
}

func NewTokenIssuer(apiKey, apiSecret, url string) *TokenIssuer {
	return &TokenIssuer{apiKey: apiKey, apiSecret: apiSecret, url: url}
}

// Issue signs a token granting identity access to room for ttl. Returns the
// token and the connection URL.
func (t *TokenIssuer) Issue(identity, room string, ttl time.Duration) (string, string, error) {
	if t.apiKey == "" || t.apiSecret == "" {
		return "", "", ErrMissingCredentials
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	now := time.Now()
	claims := Claims{
		Video: VideoGrant{Room: room, RoomJoin: true},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.apiKey,
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.apiSecret))
	if err != nil {
		return "", "", err
	}
	return signed, t.url, nil
}
