package models

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Credentials hold the wallet key used to sign every transaction of a run.
// The address is always derived from the key.
type Credentials struct {
	key *ecdsa.PrivateKey
}

// NewCredentials wraps an already parsed private key
func NewCredentials(key *ecdsa.PrivateKey) *Credentials {
	return &Credentials{key: key}
}

// Address returns the public address derived from the key
func (c *Credentials) Address() common.Address {
	return crypto.PubkeyToAddress(c.key.PublicKey)
}

// PrivateKey exposes the key to signers
func (c *Credentials) PrivateKey() *ecdsa.PrivateKey {
	return c.key
}

// String never prints the secret
func (c *Credentials) String() string {
	return c.Address().Hex()
}
