package streamcipher

import "crypto/md5"

// DeriveKeyIV expands password and salt into keyLen+ivLen bytes with a
// single MD5 pass per block: D1 = MD5(password || salt),
// Di = MD5(Di-1 || password || salt).
func DeriveKeyIV(password, salt []byte, keyLen, ivLen int) (key, iv []byte) {
	need := keyLen + ivLen
	out := make([]byte, 0, need+md5.Size)

	var prev []byte
	for len(out) < need {
		h := md5.New()
		h.Write(prev)
		h.Write(password)
		h.Write(salt)
		prev = h.Sum(nil)
		out = append(out, prev...)
	}

	return out[:keyLen:keyLen], out[keyLen:need:need]
}
