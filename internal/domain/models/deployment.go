package models

import (
	"math/big"
	"strings"
	"time"

	"github.com/zkmochi/mochi-cli/internal/domain/config"
)

// VerificationStatus represents the verification status
type VerificationStatus string

const (
	VerificationStatusUnverified VerificationStatus = "UNVERIFIED"
	VerificationStatusVerified   VerificationStatus = "VERIFIED"
	VerificationStatusFailed     VerificationStatus = "FAILED"
	VerificationStatusSkipped    VerificationStatus = "SKIPPED"
)

// DeploymentSpec describes one deployment. It is never mutated after construction.
type DeploymentSpec struct {
	artifact        *Artifact
	constructorArgs []string
	network         *config.Network
}

// NewDeploymentSpec builds an immutable spec, copying the argument slice
func NewDeploymentSpec(artifact *Artifact, args []string, network *config.Network) *DeploymentSpec {
	return &DeploymentSpec{
		artifact:        artifact,
		constructorArgs: append([]string(nil), args...),
		network:         network,
	}
}

func (s *DeploymentSpec) Artifact() *Artifact      { return s.artifact }
func (s *DeploymentSpec) Network() *config.Network { return s.network }
func (s *DeploymentSpec) ConstructorArgs() []string {
	return append([]string(nil), s.constructorArgs...)
}

// FeeEstimate is a predicted cost in wei. It is only meaningful for the deployment it
// was computed for and may be stale by the time the transaction is sent.
type FeeEstimate struct {
	Wei      *big.Int
	GasLimit uint64
	GasPrice *big.Int
}

// NewFeeEstimate computes gasLimit * gasPrice
func NewFeeEstimate(gasLimit uint64, gasPrice *big.Int) *FeeEstimate {
	wei := new(big.Int).Mul(new(big.Int).SetUint64(gasLimit), gasPrice)
	return &FeeEstimate{Wei: wei, GasLimit: gasLimit, GasPrice: new(big.Int).Set(gasPrice)}
}

// Times returns the estimate scaled by n, used to price a whole batch plan
func (f *FeeEstimate) Times(n uint64) *FeeEstimate {
	return &FeeEstimate{
		Wei:      new(big.Int).Mul(f.Wei, new(big.Int).SetUint64(n)),
		GasLimit: f.GasLimit * n,
		GasPrice: f.GasPrice,
	}
}

// Ether formats the amount in ether with trailing zeros trimmed
func (f *FeeEstimate) Ether() string {
	return FormatEther(f.Wei)
}

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// FormatEther renders a wei amount as a decimal ether string
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	neg := wei.Sign() < 0
	abs := new(big.Int).Abs(wei)
	whole, frac := new(big.Int).QuoRem(abs, weiPerEther, new(big.Int))

	fracStr := frac.String()
	fracStr = strings.Repeat("0", 18-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		fracStr = "0"
	}

	out := whole.String() + "." + fracStr
	if neg {
		out = "-" + out
	}
	return out
}

// DeploymentResult is created once from the deployment receipt
type DeploymentResult struct {
	ContractAddress     string
	TransactionHash     string
	ConstructorEncoding string // hex, 0x-prefixed
	BlockNumber         uint64
	GasUsed             uint64
}

// DeploymentRecord is the registry entry persisted after a deployment
type DeploymentRecord struct {
	ID                  string           `json:"id" yaml:"id"` // e.g. "zkSyncMainnet/ZkMochi"
	Network             string           `json:"network" yaml:"network"`
	ChainID             uint64           `json:"chainId" yaml:"chainId"`
	ContractName        string           `json:"contractName" yaml:"contractName"`
	FullyQualifiedName  string           `json:"fullyQualifiedName" yaml:"fullyQualifiedName"`
	Address             string           `json:"address" yaml:"address"`
	TransactionHash     string           `json:"transactionHash" yaml:"transactionHash"`
	Deployer            string           `json:"deployer" yaml:"deployer"`
	ConstructorArgs     []string         `json:"constructorArgs" yaml:"constructorArgs"`
	ConstructorEncoding string           `json:"constructorEncoding" yaml:"constructorEncoding"`
	BlockNumber         uint64           `json:"blockNumber" yaml:"blockNumber"`
	Verification        VerificationInfo `json:"verification" yaml:"verification"`
	CreatedAt           time.Time        `json:"createdAt" yaml:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt" yaml:"updatedAt"`
}

// VerificationInfo tracks explorer verification of a record
type VerificationInfo struct {
	Status         VerificationStatus `json:"status" yaml:"status"`
	VerificationID string             `json:"verificationId,omitempty" yaml:"verificationId,omitempty"`
	Reason         string             `json:"reason,omitempty" yaml:"reason,omitempty"`
	VerifiedAt     *time.Time         `json:"verifiedAt,omitempty" yaml:"verifiedAt,omitempty"`
}

// RecordID builds the registry key for a contract on a network
func RecordID(network, contractName string) string {
	return network + "/" + contractName
}
