package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
)

// DefaultNetwork is used when neither --network nor mochi.toml names one
const DefaultNetwork = "hardhat"

// builtinNetworks mirrors the networks of a standard zkSync hardhat project
func builtinNetworks() map[string]*config.Network {
	return map[string]*config.Network{
		"hardhat": {
			Name:    "hardhat",
			ChainID: 260,
			RPCURL:  "http://127.0.0.1:8011",
			ZkSync:  true,
		},
		"zkSyncTestnet": {
			Name:      "zkSyncTestnet",
			ChainID:   280,
			RPCURL:    "https://zksync2-testnet.zksync.dev",
			L1Network: "goerli",
			VerifyURL: "https://zksync2-testnet-explorer.zksync.dev/contract_verification",
			ZkSync:    true,
		},
		"zkSyncMainnet": {
			Name:      "zkSyncMainnet",
			ChainID:   324,
			RPCURL:    "https://mainnet.era.zksync.io",
			L1Network: "mainnet",
			VerifyURL: "https://zksync2-mainnet-explorer.zksync.dev/contract_verification",
			ZkSync:    true,
		},
	}
}

// NetworkResolver resolves network names against the built-in table
// overlaid with mochi.toml [networks.*] entries
type NetworkResolver struct {
	networks map[string]*config.Network
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(mochiFile *config.MochiFile) *NetworkResolver {
	networks := builtinNetworks()
	if mochiFile != nil {
		for name, override := range mochiFile.Networks {
			networks[name] = mergeNetwork(networks[name], name, override)
		}
	}
	return &NetworkResolver{networks: networks}
}

// mergeNetwork overlays the non-zero fields of override onto base
func mergeNetwork(base *config.Network, name string, override *config.Network) *config.Network {
	merged := config.Network{Name: name}
	if base != nil {
		merged = *base
	}
	if override.ChainID != 0 {
		merged.ChainID = override.ChainID
	}
	if override.RPCURL != "" {
		merged.RPCURL = override.RPCURL
	}
	if override.L1Network != "" {
		merged.L1Network = override.L1Network
	}
	if override.VerifyURL != "" {
		merged.VerifyURL = override.VerifyURL
	}
	if override.ZkSync {
		merged.ZkSync = true
	}
	return &merged
}

// Names returns every known network name, sorted
func (r *NetworkResolver) Names() []string {
	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns a copy of the named network configuration
func (r *NetworkResolver) Resolve(name string) (*config.Network, error) {
	network, ok := r.networks[name]
	if !ok {
		msg := fmt.Sprintf("%q", name)
		if suggestions := r.Suggest(name); len(suggestions) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownNetwork, msg)
	}

	out := *network
	if url, ok := rpcFromEnv(name); ok {
		out.RPCURL = url
	}
	if out.RPCURL == "" {
		return nil, fmt.Errorf("network %s has no rpc url, set %s", name, RPCEnvVarName(name))
	}
	return &out, nil
}

// Suggest returns known network names that fuzzily match name, best first
func (r *NetworkResolver) Suggest(name string) []string {
	names := r.Names()
	matches := fuzzy.Find(name, names)

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, names[m.Index])
	}
	return out
}
