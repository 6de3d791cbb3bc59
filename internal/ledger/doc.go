// Package ledger is the client for the node's JSON-RPC surface. The rest of
// keyward depends only on the four-operation Client contract (state root,
// state query, submit, fetch), never on the transport behind it.
package ledger
