package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

// DefaultMintMethod is the contract method called for every batch
const DefaultMintMethod = "mint"

// MintParams contains parameters for minting in batches
type MintParams struct {
	ContractName string
	Address      string // deployed contract, resolved from config or registry when empty
	Recipient    string // defaults to the wallet address
	TotalUnits   uint64
	BatchSize    uint64
	Method       string
}

// MintResult contains the result of a batched mint
type MintResult struct {
	Network       *config.Network
	Address       string
	Recipient     string
	Plan          models.BatchPlan
	BatchEstimate *models.FeeEstimate
	TotalEstimate *models.FeeEstimate
	Batches       []*models.BatchResult
}

// MintTokens mints a large number of units through sequential, confirmed batches
type MintTokens struct {
	cfg       *config.RuntimeConfig
	creds     CredentialStore
	artifacts ArtifactStore
	dialer    LedgerDialer
	confirmer Confirmer
	repo      DeploymentRepository
	runner    *RunBatches
	progress  ProgressSink
	log       *slog.Logger
}

// NewMintTokens creates a new mint use case
func NewMintTokens(
	cfg *config.RuntimeConfig,
	creds CredentialStore,
	artifacts ArtifactStore,
	dialer LedgerDialer,
	confirmer Confirmer,
	repo DeploymentRepository,
	runner *RunBatches,
	progress ProgressSink,
	log *slog.Logger,
) *MintTokens {
	return &MintTokens{
		cfg:       cfg,
		creds:     creds,
		artifacts: artifacts,
		dialer:    dialer,
		confirmer: confirmer,
		repo:      repo,
		runner:    runner,
		progress:  progress,
		log:       log.With("component", "mint"),
	}
}

// Run estimates one batch, asks for confirmation of the whole plan and then runs it.
// When a batch fails the result still carries the batches confirmed before it.
func (uc *MintTokens) Run(ctx context.Context, params MintParams) (*MintResult, error) {
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

	method := params.Method
	if method == "" {
		method = DefaultMintMethod
	}
	if _, ok := artifact.ABI.Methods[method]; !ok {
		return nil, &domain.ConfigError{Field: "method", Err: fmt.Errorf("%s has no method %q", artifact.ContractName, method)}
	}

	address, err := uc.resolveAddress(ctx, params, network, artifact)
	if err != nil {
		return nil, err
	}

	recipient := params.Recipient
	if recipient == "" {
		recipient = creds.Address().Hex()
	}
	if !common.IsHexAddress(recipient) {
		return nil, &domain.ConfigError{Field: "recipient", Err: fmt.Errorf("%w: %s", domain.ErrInvalidAddress, recipient)}
	}

	plan, err := models.NewBatchPlan(params.TotalUnits, params.BatchSize)
	if err != nil {
		return nil, &domain.ConfigError{Field: "batch-size", Err: err}
	}

	result := &MintResult{
		Network:   network,
		Address:   address,
		Recipient: recipient,
		Plan:      plan,
	}
	if plan.BatchCount() == 0 {
		return result, nil
	}

	estimateCtx, cancel := beforeSubmit(ctx, uc.cfg.Timeout)
	defer cancel()

	ledger, err := uc.dialer.Dial(estimateCtx, network, creds)
	if err != nil {
		return nil, &domain.DeployError{Stage: domain.StageEstimate, Err: err}
	}
	defer ledger.Close()

	submitter := &mintSubmitter{
		ledger:    ledger,
		artifact:  artifact,
		address:   address,
		method:    method,
		recipient: recipient,
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "estimate", Message: "Estimating mint fee...", Spinner: true})
	estimate, err := ledger.EstimateCallFee(estimateCtx, artifact, submitter.call(plan.UnitsFor(0)))
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "estimate"})
	if err != nil {
		return nil, &domain.DeployError{Stage: domain.StageEstimate, Err: err}
	}
	result.BatchEstimate = estimate
	result.TotalEstimate = estimate.Times(uint64(plan.BatchCount()))
	uc.progress.Info(fmt.Sprintf("Price to mint %d units is %s ETH", plan.UnitsFor(0), estimate.Ether()))

	message := fmt.Sprintf("Minting %d units in %d batches is estimated to cost %s ETH. Do you want to continue?",
		plan.TotalUnits, plan.BatchCount(), result.TotalEstimate.Ether())
	ok, err := uc.confirmer.Confirm(ctx, message)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrDeclined
	}

	result.Batches, err = uc.runner.Run(ctx, plan, submitter)
	return result, err
}

// resolveAddress picks the contract address from params, mochi.toml, then the registry
func (uc *MintTokens) resolveAddress(ctx context.Context, params MintParams, network *config.Network, artifact *models.Artifact) (string, error) {
	address := params.Address
	if address == "" && uc.cfg.MochiFile != nil {
		address = uc.cfg.MochiFile.Contract.Address
	}
	if address == "" {
		record, err := uc.repo.GetDeployment(ctx, models.RecordID(network.Name, artifact.ContractName))
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return "", &domain.ConfigError{
				Field: "address",
				Err:   fmt.Errorf("no deployment of %s recorded on %s, pass --address", artifact.ContractName, network.Name),
			}
		case err != nil:
			return "", fmt.Errorf("failed to read deployment registry: %w", err)
		}
		address = record.Address
	}

	if !common.IsHexAddress(address) {
		return "", &domain.ConfigError{Field: "address", Err: fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)}
	}
	return address, nil
}

// mintSubmitter adapts a ledger session to the batch runner
type mintSubmitter struct {
	ledger    LedgerClient
	artifact  *models.Artifact
	address   string
	method    string
	recipient string
}

func (s *mintSubmitter) call(units uint64) *models.ContractCall {
	return &models.ContractCall{
		To:     s.address,
		Method: s.method,
		Args:   []string{s.recipient, strconv.FormatUint(units, 10)},
	}
}

func (s *mintSubmitter) SubmitBatch(ctx context.Context, index int, units uint64) (*models.TxHandle, error) {
	return s.ledger.Submit(ctx, s.artifact, s.call(units))
}

func (s *mintSubmitter) AwaitConfirmation(ctx context.Context, handle *models.TxHandle) (*models.Receipt, error) {
	return s.ledger.AwaitConfirmation(ctx, handle)
}
