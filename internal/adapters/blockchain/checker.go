package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// DefaultTimeout bounds every probe of a network
const DefaultTimeout = 5 * time.Second

// CheckerAdapter probes RPC endpoints without signing anything
type CheckerAdapter struct {
	timeout time.Duration
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{timeout: DefaultTimeout}
}

// ChainID dials rpcURL and returns the chain it reports
func (c *CheckerAdapter) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// CodeExists reports whether a contract is deployed at address
func (c *CheckerAdapter) CodeExists(ctx context.Context, rpcURL, address string) (bool, error) {
	if !common.IsHexAddress(address) {
		return false, fmt.Errorf("invalid address: %s", address)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return false, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	code, err := client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return len(code) > 0, nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainChecker = (*CheckerAdapter)(nil)
