package config

import (
	"time"
)

// Mode decides whether successful deployments are verified on an explorer
type Mode string

const (
	ModeVerify Mode = "verify"
	ModeLocal  Mode = "local"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Network *Network
	Mode    Mode

	// PrivateKey is the raw wallet secret. Only the credential store reads it.
	PrivateKey string `json:"-"`

	// Execution settings
	Debug          bool
	NonInteractive bool
	AssumeYes      bool          // answer every confirmation with yes
	Timeout        time.Duration // bounds dialing and fee estimation, never a sent transaction

	// Resolved configurations
	MochiFile *MochiFile
}

// VerifyEnabled reports whether deployments on the current network get verified
func (c *RuntimeConfig) VerifyEnabled() bool {
	return c.Mode == ModeVerify && c.Network != nil && c.Network.VerifyURL != ""
}

// Network represents network configuration
type Network struct {
	Name      string `json:"name" toml:"-"`
	ChainID   uint64 `json:"chainId" toml:"chain_id"`
	RPCURL    string `json:"rpcUrl" toml:"url"`
	L1Network string `json:"l1Network,omitempty" toml:"eth_network"`
	VerifyURL string `json:"verifyUrl,omitempty" toml:"verify_url"`
	ZkSync    bool   `json:"zksync" toml:"zksync"`
}

// IsLocal reports whether the network is a local development node
func (n *Network) IsLocal() bool {
	return n.VerifyURL == "" && n.L1Network == ""
}
