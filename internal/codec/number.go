package codec

import (
	"fmt"
	"math"
	"math/big"
)

// NumberToBytes returns the minimal little-endian encoding of n.
// Zero encodes as a single zero byte. n must not be negative.
func NumberToBytes(n *big.Int) []byte {
	if n.Sign() < 0 {
		panic("codec: NumberToBytes of negative number")
	}
	if n.Sign() == 0 {
		return []byte{0}
	}

	be := n.Bytes()
	out := make([]byte, len(be))
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}

// BytesToNumber decodes a little-endian byte sequence. Trailing zero bytes
// contribute nothing.
func BytesToNumber(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

// LengthToBytes is NumberToBytes for a non-negative length.
func LengthToBytes(n int) []byte {
	if n < 0 {
		panic(fmt.Sprintf("codec: negative length %d", n))
	}
	return NumberToBytes(big.NewInt(int64(n)))
}

// BytesToLength decodes a little-endian length and reports an error when the
// value does not fit in an int.
func BytesToLength(b []byte) (int, error) {
	n := BytesToNumber(b)
	if !n.IsInt64() || n.Int64() > math.MaxInt {
		return 0, fmt.Errorf("length %s overflows int", n.String())
	}
	return int(n.Int64()), nil
}

// PutSlot writes v into slot, zero-filling the remainder. It fails when v is
// longer than the slot.
func PutSlot(slot, v []byte) error {
	if len(v) > len(slot) {
		return fmt.Errorf("value of %d bytes does not fit %d byte slot", len(v), len(slot))
	}
	n := copy(slot, v)
	clear(slot[n:])
	return nil
}
