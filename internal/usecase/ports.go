package usecase

import (
	"context"

	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

// CredentialStore hands out the wallet credentials resolved at startup
type CredentialStore interface {
	Credentials(ctx context.Context) (*models.Credentials, error)
}

// LedgerDialer opens a ledger session for one network and one signer
type LedgerDialer interface {
	Dial(ctx context.Context, network *config.Network, creds *models.Credentials) (LedgerClient, error)
}

// LedgerClient signs, prices, submits and awaits transactions on the target network.
// Implementations are used from a single flow and need not be safe for concurrent use.
type LedgerClient interface {
	EstimateDeployFee(ctx context.Context, spec *models.DeploymentSpec) (*models.FeeEstimate, error)
	Deploy(ctx context.Context, spec *models.DeploymentSpec) (*models.DeploymentResult, error)
	EstimateCallFee(ctx context.Context, abiSource *models.Artifact, call *models.ContractCall) (*models.FeeEstimate, error)
	Submit(ctx context.Context, abiSource *models.Artifact, call *models.ContractCall) (*models.TxHandle, error)
	AwaitConfirmation(ctx context.Context, handle *models.TxHandle) (*models.Receipt, error)
	Close()
}

// ArtifactStore provides access to compiled contracts
type ArtifactStore interface {
	LoadArtifact(ctx context.Context, name string) (*models.Artifact, error)
	// EncodeConstructorArgs ABI-encodes constructor arguments for the artifact
	EncodeConstructorArgs(artifact *models.Artifact, args []string) (string, error)
}

// VerificationRequest is everything an explorer needs to verify a deployment
type VerificationRequest struct {
	Network             *config.Network
	Address             string
	FullyQualifiedName  string
	SourceName          string
	ConstructorArgs     []string
	ConstructorEncoding string
}

// ContractVerifier handles contract verification
type ContractVerifier interface {
	Verify(ctx context.Context, req *VerificationRequest) (verificationID string, err error)
}

// Confirmer blocks the flow for one yes/no decision from the operator
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// DeploymentSelector lets the operator pick among several recorded deployments
type DeploymentSelector interface {
	SelectDeployment(ctx context.Context, records []*models.DeploymentRecord, prompt string) (*models.DeploymentRecord, error)
}

// DeploymentRepository handles persistence of deployment records
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, id string) (*models.DeploymentRecord, error)
	ListDeployments(ctx context.Context) ([]*models.DeploymentRecord, error)
	SaveDeployment(ctx context.Context, record *models.DeploymentRecord) error
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// ChainChecker probes a network read-only, no credentials involved
type ChainChecker interface {
	ChainID(ctx context.Context, rpcURL string) (uint64, error)
	CodeExists(ctx context.Context, rpcURL, address string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
