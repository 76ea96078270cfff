package render

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

var testnet = &config.Network{Name: "zkSyncTestnet", ChainID: 280}

func deployResult() *usecase.DeployResult {
	return &usecase.DeployResult{
		Network:  testnet,
		Deployer: "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23",
		Artifact: &models.Artifact{ContractName: "ZkMochi", SourceName: "contracts/ZkMochi.sol"},
		Estimate: models.NewFeeEstimate(21000, big.NewInt(250_000_000)),
	}
}

func TestDeployRenderer_DryRun(t *testing.T) {
	out := &bytes.Buffer{}

	require.NoError(t, NewDeployRenderer(out, false).Render(deployResult()))

	assert.Contains(t, out.String(), "Network:  zkSyncTestnet (chain 280)")
	assert.Contains(t, out.String(), "Contract: contracts/ZkMochi.sol:ZkMochi")
	assert.Contains(t, out.String(), "Estimate: 0.00000525 ETH (21000 gas)")
	assert.Contains(t, out.String(), "Dry run, nothing was deployed.")
}

func TestDeployRenderer_Deployed(t *testing.T) {
	result := deployResult()
	result.Deployment = &models.DeploymentResult{
		ContractAddress: "0x2F31ac0C3C4BC1ed24bDEBFEF33c3F2a756fA9b0",
		TransactionHash: "0xfeed",
		BlockNumber:     7,
	}
	result.Verification = &usecase.VerificationOutcome{
		Attempted:      true,
		VerificationID: "42",
		Err:            &domain.VerificationError{Address: "0x2F31ac0C3C4BC1ed24bDEBFEF33c3F2a756fA9b0", Err: domain.ErrVerificationFailed},
	}
	result.Warnings = []string{"failed to record deployment: disk full"}
	out := &bytes.Buffer{}

	require.NoError(t, NewDeployRenderer(out, false).Render(result))

	assert.Contains(t, out.String(), "ZkMochi was deployed to 0x2F31ac0C3C4BC1ed24bDEBFEF33c3F2a756fA9b0")
	assert.Contains(t, out.String(), "Transaction: 0xfeed")
	assert.Contains(t, out.String(), "Verification of 0x2F31ac0C3C4BC1ed24bDEBFEF33c3F2a756fA9b0 failed")
	assert.Contains(t, out.String(), "Verification ID: 42")
	assert.Contains(t, out.String(), "Failed to record deployment: disk full")
	assert.NotContains(t, out.String(), "Dry run")
}

func TestDeployRenderer_VerificationSkipped(t *testing.T) {
	result := deployResult()
	result.Deployment = &models.DeploymentResult{ContractAddress: "0x01", TransactionHash: "0x02"}
	result.Verification = &usecase.VerificationOutcome{SkipReason: "deployed locally"}
	out := &bytes.Buffer{}

	require.NoError(t, NewDeployRenderer(out, false).Render(result))

	assert.Contains(t, out.String(), "Verification skipped: deployed locally")
}

func TestMintRenderer(t *testing.T) {
	plan, err := models.NewBatchPlan(600, 250)
	require.NoError(t, err)
	result := &usecase.MintResult{
		Network:   testnet,
		Recipient: "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23",
		Plan:      plan,
		Batches: []*models.BatchResult{
			{Index: 0, Units: 250, TransactionHash: "0xa1", BlockNumber: 10, Confirmed: true},
			{Index: 1, Units: 250, TransactionHash: "0xa2", BlockNumber: 11, Confirmed: true},
		},
	}

	t.Run("partial", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, NewMintRenderer(out, false).Render(result))

		assert.Contains(t, out.String(), "0xa2")
		assert.Contains(t, out.String(), "Minted 500 of 600 units to 0x2c7536E3605D9C16a7a3D7b1898e529396a65c23 in 2 of 3 batches")
	})

	t.Run("nothing to mint", func(t *testing.T) {
		empty, err := models.NewBatchPlan(0, 250)
		require.NoError(t, err)
		out := &bytes.Buffer{}

		require.NoError(t, NewMintRenderer(out, false).Render(&usecase.MintResult{Plan: empty}))
		assert.Equal(t, "Nothing to mint.\n", out.String())
	})
}

func TestVerifyRenderer(t *testing.T) {
	verified := &models.DeploymentRecord{
		ID:           "zkSyncTestnet/ZkMochi",
		Address:      "0x01",
		Verification: models.VerificationInfo{Status: models.VerificationStatusVerified, VerificationID: "9"},
	}
	failed := &models.DeploymentRecord{
		ID:           "zkSyncTestnet/Other",
		Address:      "0x02",
		Verification: models.VerificationInfo{Status: models.VerificationStatusFailed},
	}

	t.Run("already verified", func(t *testing.T) {
		out := &bytes.Buffer{}
		err := NewVerifyRenderer(out, false).RenderVerifyResult(&usecase.VerifyResult{Record: verified, Success: true, AlreadyVerified: true}, usecase.VerifyOptions{})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "zkSyncTestnet/ZkMochi is already verified")
	})

	t.Run("all", func(t *testing.T) {
		out := &bytes.Buffer{}
		result := &usecase.VerifyAllResult{
			Results: []*usecase.VerifyResult{
				{Record: verified, Success: true},
				{Record: failed, Errors: []string{errors.New("compilation failed").Error()}},
			},
			SuccessCount: 1,
		}

		require.NoError(t, NewVerifyRenderer(out, false).RenderVerifyAllResult(result, usecase.VerifyOptions{}))
		assert.Contains(t, out.String(), "Status: Verified (id 9)")
		assert.Contains(t, out.String(), "✗ compilation failed")
		assert.Contains(t, out.String(), "Verification complete: 1/2 successful")
	})

	t.Run("nothing to verify", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, NewVerifyRenderer(out, false).RenderVerifyAllResult(&usecase.VerifyAllResult{Skipped: []*models.DeploymentRecord{verified}}, usecase.VerifyOptions{}))
		assert.Contains(t, out.String(), "Skipping 1 verified contracts")
		assert.Contains(t, out.String(), "Use --force")
	})
}

func TestDeploymentsRenderer_GroupsByNetwork(t *testing.T) {
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	result := &usecase.DeploymentListResult{
		Deployments: []*models.DeploymentRecord{
			{Network: "zkSyncMainnet", ChainID: 324, ContractName: "ZkMochi", Address: "0x01", CreatedAt: created,
				Verification: models.VerificationInfo{Status: models.VerificationStatusVerified}},
			{Network: "zkSyncTestnet", ChainID: 280, ContractName: "ZkMochi", Address: "0x02", CreatedAt: created,
				Verification: models.VerificationInfo{Status: models.VerificationStatusFailed}},
		},
		Summary: usecase.DeploymentSummary{Total: 2, Unverified: 1},
	}
	out := &bytes.Buffer{}

	require.NoError(t, NewDeploymentsRenderer(out, false).RenderDeploymentList(result))

	assert.Contains(t, out.String(), "zkSyncMainnet (324)")
	assert.Contains(t, out.String(), "zkSyncTestnet (280)")
	assert.Contains(t, out.String(), "✓ verified")
	assert.Contains(t, out.String(), "✗ failed")
	assert.Contains(t, out.String(), "Total deployments: 2 (1 unverified)")
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatError("deployment failed at submit stage: nonce too low"), "Deployment failed at submit stage: nonce too low")
	assert.Equal(t, "Unverified", statusTitle("UNVERIFIED"))
	assert.Equal(t, "plain", paint(false, verifiedStyle, "plain"))
}

func TestNetworksRenderer(t *testing.T) {
	result := &usecase.ListNetworksResult{
		Current: "zkSyncTestnet",
		Networks: []usecase.NetworkStatus{
			{Name: "hardhat", ChainID: 260, RPCURL: "http://127.0.0.1:8011", CheckError: errors.New("refused")},
			{Name: "zkSyncTestnet", ChainID: 280, RPCURL: "https://zksync2-testnet.zksync.dev", L1Network: "goerli", Verifies: true, LiveChainID: 300},
		},
	}
	out := &bytes.Buffer{}

	require.NoError(t, NewNetworksRenderer(out, false).RenderNetworksList(result))

	assert.Contains(t, out.String(), "Live")
	assert.Contains(t, out.String(), "✗ unreachable")
	assert.Contains(t, out.String(), "⚠ chain 300")
	assert.Contains(t, out.String(), "goerli")
}

func TestDeploymentsRenderer_OnChainColumn(t *testing.T) {
	result := &usecase.DeploymentListResult{
		Deployments: []*models.DeploymentRecord{
			{ID: "hardhat/ZkMochi", Network: "hardhat", ChainID: 260, ContractName: "ZkMochi", Address: "0x01"},
		},
		Summary: usecase.DeploymentSummary{Total: 1, Unverified: 1},
		OnChain: map[string]usecase.OnChainStatus{"hardhat/ZkMochi": {Exists: false}},
	}
	out := &bytes.Buffer{}

	require.NoError(t, NewDeploymentsRenderer(out, false).RenderDeploymentList(result))

	assert.Contains(t, out.String(), "○ no code")
}
