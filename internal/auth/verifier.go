package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks RS256 session tokens against a KeySet.
type Verifier struct {
	keys   *KeySet
	parser *jwt.Parser
}

func NewVerifier(keys *KeySet) *Verifier {
	return &Verifier{
		keys: keys,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify returns the token's subject when the token is valid.
func (v *Verifier) Verify(tokenString string) (string, error) {
	token, err := v.parser.Parse(tokenString, v.keys.Keyfunc)
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if subject == "" {
		return "", errors.New("invalid session token: missing subject")
	}
	return subject, nil
}
