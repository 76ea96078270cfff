package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

func TestSelectDeployment(t *testing.T) {
	mochi := &models.DeploymentRecord{ID: "zkSyncTestnet/ZkMochi", ContractName: "ZkMochi"}
	other := &models.DeploymentRecord{ID: "zkSyncTestnet/Auction", ContractName: "Auction"}

	t.Run("single record needs no prompt", func(t *testing.T) {
		selected, err := NewSelectorAdapter(&config.RuntimeConfig{}).SelectDeployment(context.Background(), []*models.DeploymentRecord{mochi}, "Pick")

		require.NoError(t, err)
		assert.Same(t, mochi, selected)
	})

	t.Run("ambiguous in non-interactive mode", func(t *testing.T) {
		_, err := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true}).SelectDeployment(context.Background(), []*models.DeploymentRecord{mochi, other}, "Pick")

		assert.ErrorContains(t, err, "2 deployments match")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewSelectorAdapter(&config.RuntimeConfig{}).SelectDeployment(context.Background(), nil, "Pick")

		assert.Error(t, err)
	})
}

func TestFuzzySearch(t *testing.T) {
	search := createFuzzySearchFunc([]string{"ZkMochi at 0x2F31", "Auction at 0x9a1b"})

	assert.True(t, search("", 1))
	assert.True(t, search("mochi", 0))
	assert.True(t, search("zkmch", 0))
	assert.False(t, search("zkmch", 1))
}
