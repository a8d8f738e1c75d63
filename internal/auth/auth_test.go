package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwkFor(kid string, pub interface{}, use string) jose.JSONWebKey {
	return jose.JSONWebKey{Key: pub, KeyID: kid, Algorithm: "RS256", Use: use}
}

func newKeyServer(t *testing.T, keys ...interface{}) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v2/keys/P1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"keys": keys})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func sign(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	server, calls := newKeyServer(t, jwkFor("K1", &key.PublicKey, "sig"))
	keys := NewKeySet(server.URL, "P1", time.Second)
	verifier := NewVerifier(keys)

	valid := jwt.MapClaims{"sub": "U1", "exp": time.Now().Add(time.Hour).Unix()}

	_, err = verifier.Verify(sign(t, key, "K1", valid))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoKeys))

	require.NoError(t, keys.Refresh(context.Background()))
	assert.Equal(t, 1, *calls)
	assert.Equal(t, 1, keys.Len())

	subject, err := verifier.Verify(sign(t, key, "K1", valid))
	require.NoError(t, err)
	assert.Equal(t, "U1", subject)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: sign(t, key, "K1", jwt.MapClaims{"sub": "U1", "exp": time.Now().Add(-time.Minute).Unix()})},
		{name: "no expiry", token: sign(t, key, "K1", jwt.MapClaims{"sub": "U1"})},
		{name: "no subject", token: sign(t, key, "K1", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})},
		{name: "unknown kid", token: sign(t, key, "K2", valid)},
		{name: "wrong key", token: sign(t, other, "K1", valid)},
		{name: "garbage", token: "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestVerifier_RejectsHMAC(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server, _ := newKeyServer(t, jwkFor("K1", &key.PublicKey, "sig"))
	keys := NewKeySet(server.URL, "P1", time.Second)
	require.NoError(t, keys.Refresh(context.Background()))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "U1", "exp": time.Now().Add(time.Hour).Unix()})
	token.Header["kid"] = "K1"
	s, err := token.SignedString([]byte("shared"))
	require.NoError(t, err)

	_, err = NewVerifier(keys).Verify(s)
	assert.Error(t, err)
}

func TestKeySet_RefreshFailureKeepsKeys(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	fail := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"keys": []jose.JSONWebKey{jwkFor("K1", &key.PublicKey, "sig")}})
	}))
	defer server.Close()

	keys := NewKeySet(server.URL, "P1", time.Second)
	require.NoError(t, keys.Refresh(context.Background()))

	fail = true
	assert.Error(t, keys.Refresh(context.Background()))
	assert.Equal(t, 1, keys.Len())
}

func TestKeySet_IgnoresNonSigningKeys(t *testing.T) {
	server, _ := newKeyServer(t, map[string]string{"kid": "E1", "kty": "EC"})
	keys := NewKeySet(server.URL, "P1", time.Second)

	err := keys.Refresh(context.Background())
	assert.True(t, errors.Is(err, ErrNoKeys))
}

func TestKeySet_KeepsOnlyRSASigningKeys(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	encKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	server, _ := newKeyServer(t,
		jwkFor("K1", &rsaKey.PublicKey, "sig"),
		jwkFor("K2", &encKey.PublicKey, "enc"),
		jose.JSONWebKey{Key: &ecKey.PublicKey, KeyID: "E1", Algorithm: "ES256", Use: "sig"},
		map[string]string{"kid": "bad", "kty": "RSA", "n": "%%%", "e": "AQAB"},
	)
	keys := NewKeySet(server.URL, "P1", time.Second)

	require.NoError(t, keys.Refresh(context.Background()))
	assert.Equal(t, 1, keys.Len())

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "U1", "exp": time.Now().Add(time.Hour).Unix()})
	token.Header["kid"] = "K1"
	key, err := keys.Keyfunc(token)
	require.NoError(t, err)
	assert.True(t, rsaKey.PublicKey.Equal(key))
}
