// Package commands defines the keyward CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - key init / key show    Manage the local signing key
//   - register               Register a guardian set for an owner
//   - recover start          Open a recovery request naming a replacement key
//   - recover approve        Approve a request as a guardian
//   - recover check          Run the on-chain threshold check
//   - recover finalize       Finalize a request and install the new key
//   - guardians, threshold,  Read the registry's named state
//     registered, is-guardian
//   - status                 One-shot probe of a submitted transaction
//
// # Implementation
//
// The root command loads the TOML config, applies flag overrides, and
// builds the dependency graph (node client, confirmation manager, state
// reader, keystore) before any subcommand runs. Write commands unseal the
// signing key with the passphrase and build the recovery service on demand.
package commands
