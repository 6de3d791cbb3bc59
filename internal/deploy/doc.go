// Package deploy builds the signable transaction artifact around an encoded
// argument set: header (caller identity, timing, chain name), payment
// budget, and the session item that selects the call mode. ModuleBytes
// carries one-shot bootstrap code; StoredContractByHash invokes a named
// entry point on the deployed registry.
//
// The body hash covers payment and session; the deploy hash covers the
// header and is what gets signed. The deploy hash doubles as the
// transaction id on the wire.
package deploy
