// Package commands defines the qdsa CLI.
//
// # Commands
//
//   - keygen   Create a key pair from a seed or from system entropy
//   - pubkey   Print the public key of a secret key
//   - sign     Sign a message
//   - verify   Check a signature, exiting with status 1 when it is invalid
//   - secret   Compute a Diffie-Hellman shared secret
//   - info     Print the CPU features the hash backend can use
//
// # Implementation
//
// The root command loads the configuration (YAML file, QDSA_* environment,
// then flags) and builds a zap logger before any subcommand runs. Results
// are written to stdout in the configured encoding; logs go to stderr.
package commands
