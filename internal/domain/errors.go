package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrContractNotFound is returned when no artifact matches a contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrNoBytecode is returned for abstract contracts and interfaces
	ErrNoBytecode = errors.New("artifact has no creation bytecode")

	// ErrUnlinkedBytecode is returned when bytecode still carries library placeholders
	ErrUnlinkedBytecode = errors.New("bytecode contains unlinked library references")

	// ErrConstructorArgs is returned when a contract cannot be deployed without arguments
	ErrConstructorArgs = errors.New("constructor requires arguments")

	// ErrNetworkNotFound is returned when a network name cannot be resolved
	ErrNetworkNotFound = errors.New("network not found")

	// ErrNetworkMismatch is returned when the node reports an unexpected chain ID
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrMissingPrivateKey is returned when no deployer key is configured
	ErrMissingPrivateKey = errors.New("deployer private key not configured")
)

// AmbiguousContractErr is returned when a bare contract name matches several artifacts
type AmbiguousContractErr struct {
	Name    string
	Matches []ArtifactRef
}

func (e AmbiguousContractErr) Error() string {
	sorted := make([]ArtifactRef, len(e.Matches))
	copy(sorted, e.Matches)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SourceName < sorted[j].SourceName
	})

	var suggestions []string
	for _, m := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s:%s", m.SourceName, m.ContractName))
	}

	return fmt.Sprintf("multiple artifacts found for %s - use source:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}

// DeploymentError wraps any failure of a deployment run.
// Stage is the last stage reached before the failure.
type DeploymentError struct {
	ContractName string
	Stage        DeploymentStage
	Err          error
}

func (e *DeploymentError) Error() string {
	return fmt.Sprintf("deployment of %s failed: %v", e.ContractName, e.Err)
}

func (e *DeploymentError) Unwrap() error {
	return e.Err
}
