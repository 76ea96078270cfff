package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

func TestListDeployments(t *testing.T) {
	repo := newMemRepository(
		testRecord("zkSyncTestnet", "ZkMochi", models.VerificationStatusVerified),
		testRecord("zkSyncMainnet", "ZkMochi", models.VerificationStatusUnverified),
		testRecord("zkSyncMainnet", "Auction", models.VerificationStatusFailed),
	)
	checker := &mockChecker{}
	uc := NewListDeployments(repo, &mockResolver{}, checker, NopProgress{})

	t.Run("all networks sorted", func(t *testing.T) {
		result, err := uc.Run(context.Background(), ListDeploymentsParams{})

		require.NoError(t, err)
		ids := make([]string, 0, len(result.Deployments))
		for _, d := range result.Deployments {
			ids = append(ids, d.ID)
		}
		assert.Equal(t, []string{"zkSyncMainnet/Auction", "zkSyncMainnet/ZkMochi", "zkSyncTestnet/ZkMochi"}, ids)
		assert.Equal(t, 3, result.Summary.Total)
		assert.Equal(t, 2, result.Summary.ByNetwork["zkSyncMainnet"])
		assert.Equal(t, 2, result.Summary.Unverified)
		assert.Nil(t, result.OnChain)
		assert.Zero(t, checker.calls, "no network access without Check")
	})

	t.Run("filtered", func(t *testing.T) {
		result, err := uc.Run(context.Background(), ListDeploymentsParams{Network: "zkSyncMainnet", ContractName: "ZkMochi"})

		require.NoError(t, err)
		require.Len(t, result.Deployments, 1)
		assert.Equal(t, "zkSyncMainnet/ZkMochi", result.Deployments[0].ID)
	})
}

func TestListDeployments_Check(t *testing.T) {
	testnet := testNetwork()
	repo := newMemRepository(
		testRecord("zkSyncTestnet", "ZkMochi", models.VerificationStatusVerified),
		testRecord("zkSyncTestnet", "Auction", models.VerificationStatusVerified),
		testRecord("retired", "ZkMochi", models.VerificationStatusUnverified),
	)
	repo.records["zkSyncTestnet/Auction"].Address = "0x000000000000000000000000000000000000dEaD"
	resolver := &mockResolver{networks: map[string]*config.Network{"zkSyncTestnet": testnet}}
	checker := &mockChecker{code: map[string]bool{testnet.RPCURL + mochiAddress: true}}

	result, err := NewListDeployments(repo, resolver, checker, NopProgress{}).Run(context.Background(), ListDeploymentsParams{Check: true})

	require.NoError(t, err)
	require.Len(t, result.OnChain, 3)
	assert.True(t, result.OnChain["zkSyncTestnet/ZkMochi"].Exists)
	assert.False(t, result.OnChain["zkSyncTestnet/Auction"].Exists)
	assert.NoError(t, result.OnChain["zkSyncTestnet/Auction"].Err)
	assert.ErrorIs(t, result.OnChain["retired/ZkMochi"].Err, domain.ErrUnknownNetwork)
	assert.Equal(t, 2, checker.calls)
}

func TestListNetworks(t *testing.T) {
	local := &config.Network{Name: "hardhat", ChainID: 260, RPCURL: "http://127.0.0.1:8011"}
	testnet := testNetwork()
	resolver := &mockResolver{networks: map[string]*config.Network{"hardhat": local, "zkSyncTestnet": testnet}}
	cfg := &config.RuntimeConfig{Network: testnet}

	t.Run("static", func(t *testing.T) {
		checker := &mockChecker{}
		result, err := NewListNetworks(resolver, checker, cfg).Run(context.Background(), ListNetworksParams{})

		require.NoError(t, err)
		assert.Equal(t, "zkSyncTestnet", result.Current)
		require.Len(t, result.Networks, 2)
		assert.Equal(t, "hardhat", result.Networks[0].Name)
		assert.False(t, result.Networks[0].Verifies)
		assert.True(t, result.Networks[1].Verifies)
		assert.Equal(t, "goerli", result.Networks[1].L1Network)
		assert.Zero(t, checker.calls)
	})

	t.Run("check", func(t *testing.T) {
		checker := &mockChecker{chainIDs: map[string]uint64{local.RPCURL: 270, testnet.RPCURL: 280}}
		result, err := NewListNetworks(resolver, checker, cfg).Run(context.Background(), ListNetworksParams{Check: true})

		require.NoError(t, err)
		assert.True(t, result.Networks[0].ChainMismatch())
		assert.False(t, result.Networks[1].ChainMismatch())
		assert.Equal(t, uint64(280), result.Networks[1].LiveChainID)
	})

	t.Run("unreachable", func(t *testing.T) {
		checker := &mockChecker{err: errors.New("connection refused")}
		result, err := NewListNetworks(resolver, checker, cfg).Run(context.Background(), ListNetworksParams{Check: true})

		require.NoError(t, err)
		assert.ErrorContains(t, result.Networks[0].CheckError, "connection refused")
		assert.False(t, result.Networks[0].ChainMismatch())
	})
}
