package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

// VerifyDeployment handles contract verification on block explorers
type VerifyDeployment struct {
	cfg       *config.RuntimeConfig
	repo      DeploymentRepository
	artifacts ArtifactStore
	verifier  ContractVerifier
	progress  ProgressSink
	log       *slog.Logger
}

// NewVerifyDeployment creates a new verify deployment use case
func NewVerifyDeployment(
	cfg *config.RuntimeConfig,
	repo DeploymentRepository,
	artifacts ArtifactStore,
	verifier ContractVerifier,
	progress ProgressSink,
	log *slog.Logger,
) *VerifyDeployment {
	return &VerifyDeployment{
		cfg:       cfg,
		repo:      repo,
		artifacts: artifacts,
		verifier:  verifier,
		progress:  progress,
		log:       log.With("component", "verify"),
	}
}

// VerifyOptions contains options for verification
type VerifyOptions struct {
	Force bool // Re-verify even if already verified
}

// VerifyResult contains the result of verification
type VerifyResult struct {
	Record          *models.DeploymentRecord
	Success         bool
	AlreadyVerified bool
	Errors          []string
}

// VerifyAllResult contains the result of verifying all deployments
type VerifyAllResult struct {
	Results      []*VerifyResult
	Skipped      []*models.DeploymentRecord
	SuccessCount int
}

// VerifySpecific verifies the recorded deployment of a contract on the current network
func (v *VerifyDeployment) VerifySpecific(ctx context.Context, contractName string, options VerifyOptions) (*VerifyResult, error) {
	network, err := v.verifiableNetwork()
	if err != nil {
		return nil, err
	}

	record, err := v.repo.GetDeployment(ctx, models.RecordID(network.Name, contractName))
	if err != nil {
		return nil, fmt.Errorf("no deployment of %s recorded on %s: %w", contractName, network.Name, err)
	}

	if record.Verification.Status == models.VerificationStatusVerified && !options.Force {
		return &VerifyResult{Record: record, Success: true, AlreadyVerified: true}, nil
	}

	return v.verifyAndSave(ctx, network, record), nil
}

// VerifyAll verifies every unverified deployment recorded on the current network
func (v *VerifyDeployment) VerifyAll(ctx context.Context, options VerifyOptions) (*VerifyAllResult, error) {
	network, err := v.verifiableNetwork()
	if err != nil {
		return nil, err
	}

	records, err := v.repo.ListDeployments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	records = lo.Filter(records, func(r *models.DeploymentRecord, _ int) bool {
		return r.Network == network.Name
	})

	toVerify, skipped := lo.FilterReject(records, func(r *models.DeploymentRecord, _ int) bool {
		return options.Force || r.Verification.Status != models.VerificationStatusVerified
	})

	result := &VerifyAllResult{Skipped: skipped}
	for i, record := range toVerify {
		v.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "verify",
			Current: i + 1,
			Total:   len(toVerify),
			Message: fmt.Sprintf("Verifying %s...", record.ContractName),
			Spinner: true,
		})
		res := v.verifyAndSave(ctx, network, record)
		result.Results = append(result.Results, res)
		if res.Success {
			result.SuccessCount++
		}
	}
	v.progress.OnProgress(ctx, ProgressEvent{Stage: "verify"})

	return result, nil
}

func (v *VerifyDeployment) verifiableNetwork() (*config.Network, error) {
	network := v.cfg.Network
	if network == nil {
		return nil, &domain.ConfigError{Field: "network", Err: domain.ErrUnknownNetwork}
	}
	if network.VerifyURL == "" {
		return nil, &domain.ConfigError{Field: "network", Err: fmt.Errorf("network %s has no verification endpoint", network.Name)}
	}
	return network, nil
}

func (v *VerifyDeployment) verifyAndSave(ctx context.Context, network *config.Network, record *models.DeploymentRecord) *VerifyResult {
	result := &VerifyResult{Record: record}

	artifact, err := v.artifacts.LoadArtifact(ctx, record.ContractName)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to load artifact: %v", err))
		return result
	}

	if _, err := verifyRecord(ctx, v.verifier, network, artifact, record); err != nil {
		v.log.Warn("verification failed", "id", record.ID, "error", err)
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.Success = true
	}

	record.UpdatedAt = time.Now()
	if err := v.repo.SaveDeployment(ctx, record); err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to update registry: %v", err))
	}
	return result
}

// verifyRecord submits a record for verification and stores the outcome on it
func verifyRecord(ctx context.Context, verifier ContractVerifier, network *config.Network, artifact *models.Artifact, record *models.DeploymentRecord) (models.VerificationInfo, error) {
	id, err := verifier.Verify(ctx, &VerificationRequest{
		Network:             network,
		Address:             record.Address,
		FullyQualifiedName:  artifact.FullyQualifiedName(),
		SourceName:          artifact.SourceName,
		ConstructorArgs:     record.ConstructorArgs,
		ConstructorEncoding: record.ConstructorEncoding,
	})

	info := models.VerificationInfo{VerificationID: id}
	if err != nil {
		info.Status = models.VerificationStatusFailed
		info.Reason = err.Error()
	} else {
		now := time.Now()
		info.Status = models.VerificationStatusVerified
		info.VerifiedAt = &now
	}
	record.Verification = info
	return info, err
}
