// Package app wires application dependencies for the CLI.
//
// It loads the TOML configuration, builds the node client, confirmation
// manager, state reader and keystore from Config, and exposes them via the
// Wire struct for commands to use. The write-path service is built per
// invocation because it needs the unsealed signing key.
package app
