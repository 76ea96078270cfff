package adapters

import (
	"log/slog"
	"os"

	"github.com/google/wire"
	"github.com/mattn/go-isatty"
	"github.com/zkmochi/mochi-cli/internal/adapters/artifacts"
	"github.com/zkmochi/mochi-cli/internal/adapters/blockchain"
	internalconfig "github.com/zkmochi/mochi-cli/internal/adapters/config"
	"github.com/zkmochi/mochi-cli/internal/adapters/interactive"
	"github.com/zkmochi/mochi-cli/internal/adapters/ledger"
	"github.com/zkmochi/mochi-cli/internal/adapters/progress"
	"github.com/zkmochi/mochi-cli/internal/adapters/repository/deployments"
	"github.com/zkmochi/mochi-cli/internal/adapters/verification"
	"github.com/zkmochi/mochi-cli/internal/config"
	domainconfig "github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// ProvideProgressSink writes progress to stderr so command output stays pipeable
func ProvideProgressSink(cfg *domainconfig.RuntimeConfig) *progress.SpinnerSink {
	interactive := !cfg.NonInteractive && isatty.IsTerminal(os.Stderr.Fd())
	return progress.NewSpinnerSink(os.Stderr, interactive)
}

// ProvideVerifier builds the explorer verifier
func ProvideVerifier(cfg *domainconfig.RuntimeConfig, log *slog.Logger) *verification.Verifier {
	return verification.NewVerifier(cfg, log)
}

// StorageSet provides file-backed implementations
var StorageSet = wire.NewSet(
	deployments.NewFileRepository,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),

	artifacts.NewStore,
	wire.Bind(new(usecase.ArtifactStore), new(*artifacts.Store)),
)

// LedgerSet provides the on-chain implementations
var LedgerSet = wire.NewSet(
	ledger.NewDialer,
	wire.Bind(new(usecase.LedgerDialer), new(*ledger.Dialer)),

	ProvideVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.Verifier)),

	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.ChainChecker), new(*blockchain.CheckerAdapter)),
)

// InteractiveSet provides operator-facing implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmer,

	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.DeploymentSelector), new(*interactive.SelectorAdapter)),

	ProvideProgressSink,
	wire.Bind(new(usecase.ProgressSink), new(*progress.SpinnerSink)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),

	config.NewEnvCredentialStore,
	wire.Bind(new(usecase.CredentialStore), new(*config.EnvCredentialStore)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	StorageSet,
	LedgerSet,
	InteractiveSet,
	ConfigSet,
)
