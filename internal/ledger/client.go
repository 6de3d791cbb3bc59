package ledger

import (
	"context"

	"keyward/internal/deploy"
)

// StoredValue is one named-state record as returned by the node: the node's
// type descriptor plus the raw record bytes for the typed-argument decoders.
type StoredValue struct {
	Type  string
	Bytes []byte
}

// ExecutionResult is the contract-level outcome of an executed deploy.
// Reason carries the contract's error message verbatim on failure.
type ExecutionResult struct {
	Success bool
	Reason  string
}

// DeployInfo reports what the node knows about a submitted deploy. Executed
// is false while the deploy is known but not yet run.
type DeployInfo struct {
	Executed bool
	Result   ExecutionResult
}

// Client is the node collaborator contract. Implementations must be safe
// for concurrent independent calls.
type Client interface {
	// StateRootHash returns the latest state root known to the node.
	StateRootHash(ctx context.Context) (string, error)

	// QueryState reads one named record under a state root. Absent records
	// fail with domain.ErrNotFound.
	QueryState(ctx context.Context, rootHash, key string, path []string) (StoredValue, error)

	// PutDeploy submits a signed deploy and returns its transaction id.
	PutDeploy(ctx context.Context, d *deploy.Deploy) (string, error)

	// GetDeploy fetches a submitted deploy's execution state.
	GetDeploy(ctx context.Context, txID string) (DeployInfo, error)
}
