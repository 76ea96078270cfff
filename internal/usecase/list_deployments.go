package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	Network      string // empty lists every network
	ContractName string
	Check        bool // confirm each contract still has code on its network
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.DeploymentRecord
	Summary     DeploymentSummary
	OnChain     map[string]OnChainStatus // by record ID, only filled with Check
}

// OnChainStatus is the result of looking a recorded contract up on its network
type OnChainStatus struct {
	Exists bool
	Err    error
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total      int
	ByNetwork  map[string]int
	Unverified int
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	repo     DeploymentRepository
	resolver NetworkResolver
	checker  ChainChecker
	sink     ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(repo DeploymentRepository, resolver NetworkResolver, checker ChainChecker, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		repo:     repo,
		resolver: resolver,
		checker:  checker,
		sink:     sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments from registry",
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete"})

	deployments, err := uc.repo.ListDeployments(ctx)
	if err != nil {
		return nil, err
	}

	deployments = lo.Filter(deployments, func(d *models.DeploymentRecord, _ int) bool {
		return (params.Network == "" || d.Network == params.Network) &&
			(params.ContractName == "" || d.ContractName == params.ContractName)
	})

	sortDeployments(deployments)

	result := &DeploymentListResult{
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}
	if params.Check {
		result.OnChain = uc.checkOnChain(ctx, deployments)
	}
	return result, nil
}

// checkOnChain looks every record up on its own network, one at a time
func (uc *ListDeployments) checkOnChain(ctx context.Context, deployments []*models.DeploymentRecord) map[string]OnChainStatus {
	statuses := make(map[string]OnChainStatus, len(deployments))
	for i, d := range deployments {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "check",
			Current: i + 1,
			Total:   len(deployments),
			Message: fmt.Sprintf("Checking %s on %s", d.ContractName, d.Network),
			Spinner: true,
		})

		network, err := uc.resolver.ResolveNetwork(ctx, d.Network)
		if err != nil {
			statuses[d.ID] = OnChainStatus{Err: err}
			continue
		}
		exists, err := uc.checker.CodeExists(ctx, network.RPCURL, d.Address)
		statuses[d.ID] = OnChainStatus{Exists: exists, Err: err}
	}
	return statuses
}

// sortDeployments sorts deployments by network, then contract name
func sortDeployments(deployments []*models.DeploymentRecord) {
	sort.Slice(deployments, func(i, j int) bool {
		if deployments[i].Network != deployments[j].Network {
			return deployments[i].Network < deployments[j].Network
		}
		return deployments[i].ContractName < deployments[j].ContractName
	})
}

// calculateSummary calculates summary statistics for deployments
func calculateSummary(deployments []*models.DeploymentRecord) DeploymentSummary {
	return DeploymentSummary{
		Total: len(deployments),
		ByNetwork: lo.CountValuesBy(deployments, func(d *models.DeploymentRecord) string {
			return d.Network
		}),
		Unverified: lo.CountBy(deployments, func(d *models.DeploymentRecord) bool {
			return d.Verification.Status != models.VerificationStatusVerified
		}),
	}
}
