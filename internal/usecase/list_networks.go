package usecase

import (
	"context"

	"github.com/zkmochi/mochi-cli/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	Check bool // query each RPC for its live chain ID
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Current  string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name      string
	ChainID   uint64
	RPCURL    string
	L1Network string
	Verifies  bool
	Error     error

	// Filled when checking
	LiveChainID uint64
	CheckError  error
}

// ChainMismatch reports a reachable RPC serving a different chain than configured
func (s NetworkStatus) ChainMismatch() bool {
	return s.LiveChainID != 0 && s.LiveChainID != s.ChainID
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
	checker  ChainChecker
	current  string
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, checker ChainChecker, cfg *config.RuntimeConfig) *ListNetworks {
	uc := &ListNetworks{resolver: resolver, checker: checker}
	if cfg.Network != nil {
		uc.current = cfg.Network.Name
	}
	return uc
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	// Get all configured networks
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{
			Name: name,
		}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
		} else {
			status.ChainID = info.ChainID
			status.RPCURL = info.RPCURL
			status.L1Network = info.L1Network
			status.Verifies = info.VerifyURL != ""
			if params.Check {
				status.LiveChainID, status.CheckError = uc.checker.ChainID(ctx, info.RPCURL)
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
		Current:  uc.current,
	}, nil
}
