// Package streamcipher is the password-based stream cipher used inside .cpz
// containers.
//
// Encrypt stretches the password into a 32-byte key and a 16-byte IV with a
// salted, single-pass MD5 expansion (the OpenSSL EVP_BytesToKey scheme with
// one iteration and an 8-byte random salt), then XORs the payload with an
// XChaCha20 keystream keyed by the key and nonced by IV || salt.
//
// The derived key, IV and salt are returned in CipherParams so the caller
// can store them. Decrypt uses the stored values as-is and never re-derives
// them from a password: whoever holds a container can open it. This is the
// container contract, not an oversight, and it means a .cpz file offers
// obfuscation rather than confidentiality against anyone who knows the
// layout.
//
// Inputs and outputs are big-endian word arrays from the codec package.
package streamcipher
