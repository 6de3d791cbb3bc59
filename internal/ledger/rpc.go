package ledger

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog"

	"keyward/internal/deploy"
	"keyward/internal/domain"
)

// codeValueNotFound is the node's JSON-RPC error code for a missing named
// record under the queried root.
const codeValueNotFound = -32003

// RPCClient talks JSON-RPC 2.0 to one node over HTTP.
type RPCClient struct {
	endpoint string
	http     *http.Client
	nextID   atomic.Uint64
	log      zerolog.Logger
}

// NewRPC returns a node client for the given endpoint. A nil httpClient
// falls back to http.DefaultClient.
func NewRPC(endpoint string, httpClient *http.Client, log zerolog.Logger) *RPCClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RPCClient{endpoint: endpoint, http: httpClient, log: log}
}

var _ Client = (*RPCClient)(nil)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      uint64 `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (c *RPCClient) call(ctx context.Context, method string, params, result any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		c.log.Debug().Str("method", method).Int("code", rpcResp.Error.Code).
			Msg(rpcResp.Error.Message)
		if rpcResp.Error.Code == codeValueNotFound {
			return fmt.Errorf("%s: %w", method, domain.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", method, rpcResp.Error)
	}
	if result != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

// StateRootHash returns the latest state root known to the node.
func (c *RPCClient) StateRootHash(ctx context.Context) (string, error) {
	var out struct {
		StateRootHash string `json:"state_root_hash"`
	}
	if err := c.call(ctx, "chain_get_state_root_hash", nil, &out); err != nil {
		return "", err
	}
	return out.StateRootHash, nil
}

// QueryState reads one named record under the given root.
func (c *RPCClient) QueryState(ctx context.Context, rootHash, key string, path []string) (StoredValue, error) {
	params := map[string]any{
		"state_root_hash": rootHash,
		"key":             key,
		"path":            path,
	}
	var out struct {
		StoredValue struct {
			CLValue *struct {
				Type  json.RawMessage `json:"cl_type"`
				Bytes string          `json:"bytes"`
			} `json:"CLValue"`
		} `json:"stored_value"`
	}
	if err := c.call(ctx, "state_get_item", params, &out); err != nil {
		return StoredValue{}, err
	}
	if out.StoredValue.CLValue == nil {
		return StoredValue{}, fmt.Errorf("state_get_item %s: record is not a plain value: %w",
			key, domain.ErrNotFound)
	}
	raw, err := hex.DecodeString(out.StoredValue.CLValue.Bytes)
	if err != nil {
		return StoredValue{}, fmt.Errorf("state_get_item %s: bad record bytes: %w", key, err)
	}
	return StoredValue{Type: string(out.StoredValue.CLValue.Type), Bytes: raw}, nil
}

// PutDeploy submits a signed deploy and returns the node-acknowledged id.
func (c *RPCClient) PutDeploy(ctx context.Context, d *deploy.Deploy) (string, error) {
	var out struct {
		DeployHash string `json:"deploy_hash"`
	}
	if err := c.call(ctx, "account_put_deploy", map[string]any{"deploy": d}, &out); err != nil {
		return "", err
	}
	return out.DeployHash, nil
}

// GetDeploy fetches a deploy's execution state. A deploy with no execution
// results yet is reported as not executed, not as an error.
func (c *RPCClient) GetDeploy(ctx context.Context, txID string) (DeployInfo, error) {
	var out struct {
		ExecutionResults []struct {
			Result struct {
				Success *struct {
					Cost string `json:"cost"`
				} `json:"Success"`
				Failure *struct {
					ErrorMessage string `json:"error_message"`
				} `json:"Failure"`
			} `json:"result"`
		} `json:"execution_results"`
	}
	if err := c.call(ctx, "info_get_deploy", map[string]any{"deploy_hash": txID}, &out); err != nil {
		return DeployInfo{}, err
	}
	if len(out.ExecutionResults) == 0 {
		return DeployInfo{Executed: false}, nil
	}
	res := out.ExecutionResults[0].Result
	switch {
	case res.Failure != nil:
		return DeployInfo{
			Executed: true,
			Result:   ExecutionResult{Success: false, Reason: res.Failure.ErrorMessage},
		}, nil
	case res.Success != nil:
		return DeployInfo{Executed: true, Result: ExecutionResult{Success: true}}, nil
	default:
		return DeployInfo{Executed: false}, nil
	}
}
