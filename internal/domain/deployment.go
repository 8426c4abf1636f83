package domain

// DeploymentStage tracks a single deploy-and-report run
type DeploymentStage string

const (
	StageNotStarted           DeploymentStage = "NOT_STARTED"
	StageAwaitingConfirmation DeploymentStage = "AWAITING_CONFIRMATION"
	StageSucceeded            DeploymentStage = "SUCCEEDED"
	StageFailed               DeploymentStage = "FAILED"
)

// IsTerminal reports whether no further transition is possible
func (s DeploymentStage) IsTerminal() bool {
	return s == StageSucceeded || s == StageFailed
}

// DeployedContract is a confirmed contract-creation result.
// It lives only for the duration of a run and is never persisted.
type DeployedContract struct {
	ContractName string `json:"contractName"`
	Address      string `json:"address"`
	TxHash       string `json:"txHash,omitempty"`
	ChainID      uint64 `json:"chainId,omitempty"`
	Network      string `json:"network,omitempty"`
}
