package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDeclined is returned when the operator answers anything but "y" at a
	// confirmation gate. It is a graceful termination, not a failure.
	ErrDeclined = errors.New("user declined")

	// ErrMissingSecret is returned when no wallet private key is configured
	ErrMissingSecret = errors.New("private key not detected, add WALLET_PRIVATE_KEY to the .env file")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrArtifactNotFound is returned when a contract was never compiled
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrUnknownNetwork is returned when a network name can't be resolved
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")
)

// DeployStage names the step of a deployment an error came from
type DeployStage string

const (
	StageEstimate DeployStage = "estimate"
	StageSubmit   DeployStage = "submit"
)

// ConfigError is fatal and always raised before any network I/O.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error (%s): %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DeployError carries the stage a deployment failed at. Stage estimate means no
// prompt was shown, stage submit means the operator confirmed but the network
// (or signer) rejected the transaction.
type DeployError struct {
	Stage DeployStage
	Err   error
}

func (e *DeployError) Error() string {
	return fmt.Sprintf("deployment failed at %s stage: %v", e.Stage, e.Err)
}

func (e *DeployError) Unwrap() error { return e.Err }

// VerificationError never aborts a deployment; it is reported as a warning.
type VerificationError struct {
	Address string
	Err     error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification of %s failed: %v", e.Address, e.Err)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// BatchError identifies the batch a batched operation stopped at. Batches with a
// lower index were confirmed and stay on chain.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d failed: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// IsDeclined reports whether err is (or wraps) a declined confirmation
func IsDeclined(err error) bool {
	return errors.Is(err, ErrDeclined)
}

// IsStage reports whether err is a DeployError raised at the given stage
func IsStage(err error, stage DeployStage) bool {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		return deployErr.Stage == stage
	}
	return false
}
