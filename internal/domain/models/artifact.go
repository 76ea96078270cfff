package models

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Artifact is a compiled contract: bytecode plus its interface description
type Artifact struct {
	ContractName string
	SourceName   string // e.g. contracts/ZkMochi.sol
	ABI          abi.ABI
	Bytecode     []byte
	Path         string // file the artifact was read from
}

// FullyQualifiedName returns the path/sourceName:contractName reference explorers expect
func (a *Artifact) FullyQualifiedName() string {
	return fmt.Sprintf("%s:%s", a.SourceName, a.ContractName)
}
