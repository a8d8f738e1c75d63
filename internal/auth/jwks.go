// Package auth verifies session tokens issued by the identity platform.
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/metrics"
	"github.com/go-jose/go-jose/v4"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoKeys     = errors.New("no signing keys loaded")
	ErrUnknownKey = errors.New("unknown signing key")
)

// KeySet holds the project's RSA signing keys by key id.
type KeySet struct {
	url  string
	http *resty.Client

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

// NewKeySet points at {baseURL}/v2/keys/{projectID}. No keys are loaded until
// Refresh succeeds.
func NewKeySet(baseURL, projectID string, timeout time.Duration) *KeySet {
	client := resty.New().SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &KeySet{
		url:  strings.TrimRight(baseURL, "/") + "/v2/keys/" + projectID,
		http: client,
		keys: make(map[string]*rsa.PublicKey),
	}
}

// Refresh replaces the key set with the platform's current keys. On failure
// the previous keys stay in use.
func (k *KeySet) Refresh(ctx context.Context) error {
	keys, err := k.fetch(ctx)
	if err != nil {
		metrics.JWKSRefreshTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.JWKSRefreshTotal.WithLabelValues("success").Inc()

	k.mu.Lock()
	k.keys = keys
	k.mu.Unlock()
	return nil
}

func (k *KeySet) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	resp, err := k.http.R().SetContext(ctx).Get(k.url)
	if err != nil {
		return nil, fmt.Errorf("fetch signing keys: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch signing keys: status %d", resp.StatusCode())
	}

	var body struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode signing keys: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(body.Keys))
	for _, raw := range body.Keys {
		var jwk jose.JSONWebKey
		if err := jwk.UnmarshalJSON(raw); err != nil {
			logger.L().Warnf("Skipping unreadable signing key: %v", err)
			continue
		}
		pub, ok := jwk.Key.(*rsa.PublicKey)
		if !ok || (jwk.Use != "" && jwk.Use != "sig") {
			continue
		}
		keys[jwk.KeyID] = pub
	}
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	return keys, nil
}

// Len reports how many keys are loaded.
func (k *KeySet) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys)
}

// Keyfunc resolves the verification key for token by its kid header.
func (k *KeySet) Keyfunc(token *jwt.Token) (interface{}, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if len(k.keys) == 0 {
		return nil, ErrNoKeys
	}
	kid, _ := token.Header["kid"].(string)
	if key, ok := k.keys[kid]; ok {
		return key, nil
	}
	return nil, ErrUnknownKey
}
