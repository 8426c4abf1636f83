package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Artifact is a compiled contract ready to be deployed
type Artifact struct {
	ContractName string // e.g., "TVKTest"
	SourceName   string // e.g., "contracts/TVKTest.sol"
	Path         string // artifact file on disk
	ABI          abi.ABI
	Bytecode     []byte // creation bytecode
}

// FullName returns the "source:contract" identifier
func (a *Artifact) FullName() string {
	return fmt.Sprintf("%s:%s", a.SourceName, a.ContractName)
}

// ArtifactRef locates an artifact without decoding it
type ArtifactRef struct {
	ContractName string
	SourceName   string
	Path         string
}
