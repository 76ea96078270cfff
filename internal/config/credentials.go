package config

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

// LoadCredentials parses a hex encoded secp256k1 private key, with or without 0x
func LoadCredentials(secret string) (*models.Credentials, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, &domain.ConfigError{Field: PrivateKeyEnv, Err: domain.ErrMissingSecret}
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimPrefix(secret, "0x"), "0X"))
	if err != nil {
		// the parse error never includes the key material
		return nil, &domain.ConfigError{Field: PrivateKeyEnv, Err: fmt.Errorf("invalid private key: %w", err)}
	}

	return models.NewCredentials(key), nil
}

// EnvCredentialStore loads the wallet once from the runtime config
type EnvCredentialStore struct {
	secret string

	once  sync.Once
	creds *models.Credentials
	err   error
}

// NewEnvCredentialStore creates a credential store over the configured secret
func NewEnvCredentialStore(cfg *config.RuntimeConfig) *EnvCredentialStore {
	return &EnvCredentialStore{secret: cfg.PrivateKey}
}

// Credentials returns the same credentials on every call
func (s *EnvCredentialStore) Credentials(ctx context.Context) (*models.Credentials, error) {
	s.once.Do(func() {
		s.creds, s.err = LoadCredentials(s.secret)
	})
	return s.creds, s.err
}
