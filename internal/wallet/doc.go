// Package wallet defines the wallet provider that holds account key
// material, and a local file-backed implementation of it.
//
// The provider is an external collaborator: cpz only asks it for accounts,
// for an account's encryption public key, and to decrypt a sealed secret.
// Each call is a blocking request/response; a provider that never answers
// blocks the caller until its context is cancelled.
//
// # Keystore
//
// Keystore keeps one X25519 private key per account under its directory:
//
//	<dir>/accounts.toml   account index (uuid, creation time)
//	<dir>/<account>.key   hex private key, mode 0600
//
// RequestAccounts creates the default account when the keystore is empty,
// standing in for a wallet's "connect" prompt.
package wallet
