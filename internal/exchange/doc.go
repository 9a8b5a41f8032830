// Package exchange seals a container password under a recipient's public
// encryption key and unseals it through a wallet provider.
//
// Sealing uses the x25519-xsalsa20-poly1305 sealed box understood by
// Ethereum wallets (eth_getEncryptionPublicKey / eth_decrypt): an ephemeral
// X25519 key pair, a random 24-byte nonce and NaCl box. The result is the
// JSON object
//
//	{"version":"x25519-xsalsa20-poly1305","nonce":"…","ephemPublicKey":"…","ciphertext":"…"}
//
// whose bytes are hex-encoded with a 0x prefix for transport as text.
//
// A sealed secret can also travel in compact form, where every four hex
// digits become one UTF-16 code unit (codec.HexToString). UnsealPassword
// accepts either form.
package exchange
