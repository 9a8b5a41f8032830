// Package container reads and writes .cpz containers.
//
// A container is an 88-byte header followed by the ciphertext body. All
// integers are little-endian and every header field is zero-padded on the
// right:
//
//	offset  length  field
//	     0      16  original length (plaintext, before compression)
//	    16      16  cipher length
//	    32      32  key
//	    64      16  iv
//	    80       8  salt
//	    88       n  ciphertext (compressed, then encrypted)
//
// The length fields hold only as many low bytes as the value needs; readers
// sum byte[i] * 256^i over the whole slot.
//
// # Pipeline
//
// EncryptFile compresses at maximum effort and then encrypts; DecryptFile
// decrypts, decompresses and truncates to the recorded original length.
//
// The key, iv and salt are stored in the clear and DecryptFile uses them
// directly. The password is needed to create a container but not to open
// one. Treat .cpz as obfuscation: anyone who knows this layout can read the
// payload. Seal the password with the exchange package for transport, but
// do not rely on it to protect the file itself.
package container
