package container

import (
	"fmt"

	"github.com/PolarWolf314/cpz/internal/codec"
	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"github.com/PolarWolf314/cpz/internal/streamcipher"
)

// Header field offsets and widths.
const (
	originalLengthOffset = 0
	cipherLengthOffset   = 16
	keyOffset            = 32
	ivOffset             = 64
	saltOffset           = 80

	lengthSlotSize = 16
	keySlotSize    = 32
	ivSlotSize     = 16
	saltSlotSize   = 8

	// HeaderSize is the fixed size of the container header.
	HeaderSize = 88
)

// Header is the decoded fixed-size prefix of a container.
type Header struct {
	OriginalLength int
	CipherLength   int
	Key            [keySlotSize]byte
	IV             [ivSlotSize]byte
	Salt           [saltSlotSize]byte
}

// MarshalBinary encodes the header into its 88-byte form.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)

	if h.OriginalLength < 0 || h.CipherLength < 0 {
		return nil, fmt.Errorf("negative length in header")
	}
	if err := codec.PutSlot(slot(buf, originalLengthOffset, lengthSlotSize), codec.LengthToBytes(h.OriginalLength)); err != nil {
		return nil, fmt.Errorf("original length: %w", err)
	}
	if err := codec.PutSlot(slot(buf, cipherLengthOffset, lengthSlotSize), codec.LengthToBytes(h.CipherLength)); err != nil {
		return nil, fmt.Errorf("cipher length: %w", err)
	}
	copy(slot(buf, keyOffset, keySlotSize), h.Key[:])
	copy(slot(buf, ivOffset, ivSlotSize), h.IV[:])
	copy(slot(buf, saltOffset, saltSlotSize), h.Salt[:])

	return buf, nil
}

// UnmarshalBinary decodes the first HeaderSize bytes of data.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes is shorter than the %d byte header", cerrors.ErrMalformedContainer, len(data), HeaderSize)
	}

	originalLength, err := codec.BytesToLength(slot(data, originalLengthOffset, lengthSlotSize))
	if err != nil {
		return fmt.Errorf("%w: original length: %v", cerrors.ErrMalformedContainer, err)
	}
	cipherLength, err := codec.BytesToLength(slot(data, cipherLengthOffset, lengthSlotSize))
	if err != nil {
		return fmt.Errorf("%w: cipher length: %v", cerrors.ErrMalformedContainer, err)
	}

	h.OriginalLength = originalLength
	h.CipherLength = cipherLength
	copy(h.Key[:], slot(data, keyOffset, keySlotSize))
	copy(h.IV[:], slot(data, ivOffset, ivSlotSize))
	copy(h.Salt[:], slot(data, saltOffset, saltSlotSize))
	return nil
}

// Frame builds a container from the cipher material of an encryption call.
// Key, iv and salt are written through codec.BytesFromWords into their
// zero-padded slots; the ciphertext is written at its exact length.
func Frame(originalLength int, params streamcipher.CipherParams) ([]byte, error) {
	if originalLength < 0 {
		return nil, fmt.Errorf("negative original length %d", originalLength)
	}

	ciphertext := params.Ciphertext.Bytes()
	buf := make([]byte, HeaderSize+len(ciphertext))

	fields := []struct {
		name   string
		offset int
		size   int
		value  []byte
	}{
		{"original length", originalLengthOffset, lengthSlotSize, codec.LengthToBytes(originalLength)},
		{"cipher length", cipherLengthOffset, lengthSlotSize, codec.LengthToBytes(len(ciphertext))},
		{"key", keyOffset, keySlotSize, codec.BytesFromWords(params.Key)},
		{"iv", ivOffset, ivSlotSize, codec.BytesFromWords(params.IV)},
		{"salt", saltOffset, saltSlotSize, codec.BytesFromWords(params.Salt)},
	}
	for _, f := range fields {
		if err := codec.PutSlot(slot(buf, f.offset, f.size), f.value); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	copy(buf[HeaderSize:], ciphertext)
	return buf, nil
}

// Unframe parses a container into its cipher material, original length and
// cipher length. It returns ErrMalformedContainer when the buffer is shorter
// than the header or when HeaderSize + cipher length does not equal the
// buffer length.
func Unframe(data []byte) (streamcipher.CipherParams, int, int, error) {
	h, err := Inspect(data)
	if err != nil {
		return streamcipher.CipherParams{}, 0, 0, err
	}

	params := streamcipher.CipherParams{
		Ciphertext: codec.WordsFromBytes(data[HeaderSize:]),
		Key:        codec.WordsFromBytes(h.Key[:]),
		IV:         codec.WordsFromBytes(h.IV[:]),
		Salt:       codec.WordsFromBytes(h.Salt[:]),
	}
	return params, h.OriginalLength, h.CipherLength, nil
}

// Inspect decodes and validates the header of a container without decrypting it.
func Inspect(data []byte) (Header, error) {
	var h Header
	if err := h.UnmarshalBinary(data); err != nil {
		return Header{}, err
	}
	if h.CipherLength != len(data)-HeaderSize {
		return Header{}, fmt.Errorf("%w: header declares %d ciphertext bytes, container holds %d",
			cerrors.ErrMalformedContainer, h.CipherLength, len(data)-HeaderSize)
	}
	return h, nil
}

func slot(buf []byte, offset, size int) []byte {
	return buf[offset : offset+size]
}
