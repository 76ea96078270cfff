package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

// DeployParams contains parameters for deploying a contract
type DeployParams struct {
	ContractName    string
	ConstructorArgs []string
	DryRun          bool // stop after the fee estimate
	SkipVerify      bool
}

// DeployResult contains the result of a deployment
type DeployResult struct {
	Network      *config.Network
	Deployer     string
	Artifact     *models.Artifact
	Spec         *models.DeploymentSpec
	Estimate     *models.FeeEstimate
	Deployment   *models.DeploymentResult // nil on dry run
	Record       *models.DeploymentRecord
	Verification *VerificationOutcome
	Warnings     []string
}

// VerificationOutcome describes the best-effort verification step
type VerificationOutcome struct {
	Attempted      bool
	VerificationID string
	SkipReason     string
	Err            error
}

// DeployContract sequences fee estimation, confirmation, deployment and verification
type DeployContract struct {
	cfg       *config.RuntimeConfig
	creds     CredentialStore
	artifacts ArtifactStore
	dialer    LedgerDialer
	confirmer Confirmer
	verifier  ContractVerifier
	repo      DeploymentRepository
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new deploy use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	creds CredentialStore,
	artifacts ArtifactStore,
	dialer LedgerDialer,
	confirmer Confirmer,
	verifier ContractVerifier,
	repo DeploymentRepository,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		cfg:       cfg,
		creds:     creds,
		artifacts: artifacts,
		dialer:    dialer,
		confirmer: confirmer,
		verifier:  verifier,
		repo:      repo,
		progress:  progress,
		log:       log.With("component", "deploy"),
	}
}

// DeployConfirmMessage is the question asked before a deployment is sent
func DeployConfirmMessage(estimate *models.FeeEstimate) string {
	return fmt.Sprintf("The deployment is estimated to cost %s ETH. Do you want to continue?", estimate.Ether())
}

// Run executes the deployment. It returns domain.ErrDeclined when the operator
// does not confirm, in which case no transaction has been sent.
func (uc *DeployContract) Run(ctx context.Context, params DeployParams) (*DeployResult, error) {
	creds, err := uc.creds.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	network := uc.cfg.Network
	if network == nil {
		return nil, &domain.ConfigError{Field: "network", Err: domain.ErrUnknownNetwork}
	}

	artifact, err := uc.artifacts.LoadArtifact(ctx, params.ContractName)
	if err != nil {
		return nil, &domain.ConfigError{Field: "artifact", Err: err}
	}

	// Bad constructor arguments are a configuration problem, catch them before dialing
	if _, err := uc.artifacts.EncodeConstructorArgs(artifact, params.ConstructorArgs); err != nil {
		return nil, &domain.ConfigError{Field: "constructor-args", Err: err}
	}

	spec := models.NewDeploymentSpec(artifact, params.ConstructorArgs, network)
	result := &DeployResult{
		Network:  network,
		Deployer: creds.Address().Hex(),
		Artifact: artifact,
		Spec:     spec,
	}

	estimateCtx, cancel := beforeSubmit(ctx, uc.cfg.Timeout)
	defer cancel()

	uc.log.Debug("dialing ledger", "network", network.Name, "rpc", network.RPCURL, "deployer", result.Deployer)
	ledger, err := uc.dialer.Dial(estimateCtx, network, creds)
	if err != nil {
		return nil, &domain.DeployError{Stage: domain.StageEstimate, Err: err}
	}
	defer ledger.Close()

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "estimate", Message: "Estimating deployment fee...", Spinner: true})
	estimate, err := ledger.EstimateDeployFee(estimateCtx, spec)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "estimate"})
	if err != nil {
		return nil, &domain.DeployError{Stage: domain.StageEstimate, Err: err}
	}
	result.Estimate = estimate
	uc.log.Debug("fee estimated", "wei", estimate.Wei, "gas", estimate.GasLimit, "gasPrice", estimate.GasPrice)

	if params.DryRun {
		return result, nil
	}

	ok, err := uc.confirmer.Confirm(ctx, DeployConfirmMessage(estimate))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrDeclined
	}

	ctx = afterSubmit(ctx)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "submit", Message: "Deploying...", Spinner: true})
	deployment, err := ledger.Deploy(ctx, spec)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "submit"})
	if err != nil {
		return nil, &domain.DeployError{Stage: domain.StageSubmit, Err: err}
	}
	result.Deployment = deployment
	uc.log.Info("contract deployed", "contract", artifact.ContractName, "address", deployment.ContractAddress, "tx", deployment.TransactionHash)

	// From here on the deployment is authoritative, nothing below may fail the run
	skipReason := uc.verifySkipReason(params, network)
	verification := models.VerificationInfo{Status: models.VerificationStatusUnverified}
	if skipReason != "" {
		verification = models.VerificationInfo{Status: models.VerificationStatusSkipped, Reason: skipReason}
	}

	now := time.Now()
	result.Record = &models.DeploymentRecord{
		ID:                  models.RecordID(network.Name, artifact.ContractName),
		Network:             network.Name,
		ChainID:             network.ChainID,
		ContractName:        artifact.ContractName,
		FullyQualifiedName:  artifact.FullyQualifiedName(),
		Address:             deployment.ContractAddress,
		TransactionHash:     deployment.TransactionHash,
		Deployer:            result.Deployer,
		ConstructorArgs:     spec.ConstructorArgs(),
		ConstructorEncoding: deployment.ConstructorEncoding,
		BlockNumber:         deployment.BlockNumber,
		Verification:        verification,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	uc.saveRecord(ctx, result)

	if skipReason != "" {
		result.Verification = &VerificationOutcome{SkipReason: skipReason}
		return result, nil
	}

	result.Verification = uc.verify(ctx, result)
	uc.saveRecord(ctx, result)

	return result, nil
}

// verifySkipReason explains why a new deployment is not verified, empty when it will be
func (uc *DeployContract) verifySkipReason(params DeployParams, network *config.Network) string {
	switch {
	case params.SkipVerify:
		return "verification disabled"
	case uc.cfg.Mode == config.ModeLocal || network.IsLocal():
		return "deployed locally"
	case !uc.cfg.VerifyEnabled():
		return fmt.Sprintf("network %s has no verification endpoint", network.Name)
	}
	return ""
}

// verify runs the best-effort explorer verification and folds its outcome into the record
func (uc *DeployContract) verify(ctx context.Context, result *DeployResult) *VerificationOutcome {
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "verify", Message: "Verifying contract...", Spinner: true})
	info, err := verifyRecord(ctx, uc.verifier, result.Network, result.Artifact, result.Record)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "verify"})

	outcome := &VerificationOutcome{Attempted: true, VerificationID: info.VerificationID}
	if err != nil {
		outcome.Err = &domain.VerificationError{Address: result.Record.Address, Err: err}
		uc.log.Warn("verification failed", "address", result.Record.Address, "error", err)
	}
	return outcome
}

func (uc *DeployContract) saveRecord(ctx context.Context, result *DeployResult) {
	result.Record.UpdatedAt = time.Now()
	if err := uc.repo.SaveDeployment(ctx, result.Record); err != nil {
		uc.log.Warn("failed to record deployment", "id", result.Record.ID, "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to record deployment: %v", err))
	}
}
