package verification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

const (
	codeFormatStandardJSON = "solidity-standard-json-input"

	defaultPollInterval = 2 * time.Second
	defaultMaxPolls     = 60
)

// Verifier submits deployments to the network's zkSync explorer and waits for the outcome
type Verifier struct {
	projectRoot  string
	compiler     config.CompilerConfig
	client       *ExplorerClient
	pollInterval time.Duration
	maxPolls     int
	log          *slog.Logger
}

// NewVerifier creates a new explorer verifier
func NewVerifier(cfg *config.RuntimeConfig, log *slog.Logger) *Verifier {
	v := &Verifier{
		projectRoot:  cfg.ProjectRoot,
		client:       NewExplorerClient(),
		pollInterval: defaultPollInterval,
		maxPolls:     defaultMaxPolls,
		log:          log.With("component", "verifier"),
	}
	if cfg.MochiFile != nil {
		v.compiler = cfg.MochiFile.Compiler
	}
	return v
}

// Verify submits the source bundle and polls until the explorer reaches a verdict
func (v *Verifier) Verify(ctx context.Context, req *usecase.VerificationRequest) (string, error) {
	if req.Network == nil || req.Network.VerifyURL == "" {
		return "", fmt.Errorf("no verification endpoint configured")
	}

	sourceCode, err := buildStandardInput(v.projectRoot, req.SourceName, v.compiler.OptimizerEnabled())
	if err != nil {
		return "", fmt.Errorf("failed to bundle sources: %w", err)
	}

	id, err := v.client.Submit(ctx, req.Network.VerifyURL, &ExplorerRequest{
		ContractAddress:       req.Address,
		ContractName:          req.FullyQualifiedName,
		SourceCode:            sourceCode,
		CodeFormat:            codeFormatStandardJSON,
		CompilerSolcVersion:   v.compiler.SolcVersion,
		CompilerZksolcVersion: zksolcVersion(v.compiler.ZksolcVersion),
		OptimizationUsed:      v.compiler.OptimizerEnabled(),
		ConstructorArguments:  req.ConstructorEncoding,
	})
	if err != nil {
		return "", err
	}
	v.log.Debug("verification submitted", "address", req.Address, "id", id)

	return id, v.await(ctx, req.Network.VerifyURL, id)
}

func (v *Verifier) await(ctx context.Context, verifyURL, id string) error {
	last := StatusQueued
	for i := 0; i < v.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(v.pollInterval):
		}

		status, err := v.client.Status(ctx, verifyURL, id)
		if err != nil {
			return err
		}
		last = status.Status
		if !status.Terminal() {
			continue
		}
		if status.Status == StatusSuccessful {
			return nil
		}

		reason := status.Error
		if len(status.CompilationErrors) > 0 {
			reason = strings.TrimSpace(reason + " " + strings.Join(status.CompilationErrors, "; "))
		}
		return fmt.Errorf("%w: %s", domain.ErrVerificationFailed, reason)
	}
	return fmt.Errorf("verification %s still %s after %d checks", id, last, v.maxPolls)
}

// zksolcVersion formats the version the way the explorer lists compilers
func zksolcVersion(version string) string {
	if version == "" || strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

var _ usecase.ContractVerifier = (*Verifier)(nil)
