package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StaticVerifier validates locally signed HS256 tokens. It stands in for
// the Google verifier in development and tests, where no real OAuth client
// is available.
type StaticVerifier struct {
	secret []byte
}

func NewStaticVerifier(secret string) *StaticVerifier {
	return &StaticVerifier{secret: []byte(secret)}
}

func (v *StaticVerifier) Verify(_ context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}

	id := &Identity{Subject: sub}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		id.Name = name
	}
	return id, nil
}

// Sign mints a token the verifier will accept for the given identity.
func (v *StaticVerifier) Sign(id Identity, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": id.Subject,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	if id.Email != "" {
		claims["email"] = id.Email
	}
	if id.Name != "" {
		claims["name"] = id.Name
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
