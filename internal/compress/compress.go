package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec names a compression format.
type Codec string

const (
	Zstd Codec = "zstd"
	LZ4  Codec = "lz4"

	Default = Zstd
)

const (
	zstdMagic uint32 = 0xFD2FB528
	lz4Magic  uint32 = 0x184D2204
)

// ParseCodec maps a config or flag value to a Codec. Empty selects Default.
func ParseCodec(name string) (Codec, error) {
	switch Codec(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return Default, nil
	case Zstd:
		return Zstd, nil
	case LZ4:
		return LZ4, nil
	default:
		return "", fmt.Errorf("%w: %q", cerrors.ErrUnknownCodec, name)
	}
}

// Compress compresses data with the codec at its maximum effort level.
func Compress(data []byte, codec Codec) ([]byte, error) {
	switch codec {
	case Zstd, "":
		return compressZstd(data)
	case LZ4:
		return compressLZ4(data)
	default:
		return nil, fmt.Errorf("%w: %q", cerrors.ErrUnknownCodec, codec)
	}
}

// Decompress detects the codec from the frame header and decompresses.
func Decompress(data []byte) ([]byte, error) {
	codec, err := Detect(data)
	if err != nil {
		return nil, err
	}

	switch codec {
	case LZ4:
		return decompressLZ4(data)
	default:
		return decompressZstd(data)
	}
}

// Detect reports which codec produced data.
func Detect(data []byte) (Codec, error) {
	if len(data) < 4 {
		return "", fmt.Errorf("%w: stream of %d bytes is too short", cerrors.ErrDecompression, len(data))
	}

	switch binary.LittleEndian.Uint32(data[:4]) {
	case zstdMagic:
		return Zstd, nil
	case lz4Magic:
		return LZ4, nil
	default:
		return "", fmt.Errorf("%w: unrecognized frame magic %x", cerrors.ErrDecompression, data[:4])
	}
}

func compressZstd(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrCompression, err)
	}
	defer enc.Close()

	return enc.EncodeAll(data, make([]byte, 0, len(data)/2+64)), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrDecompression, err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrDecompression, err)
	}
	return out, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrCompression, err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrCompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrCompression, err)
	}

	// An lz4 writer that saw no data may emit no frame at all.
	if buf.Len() == 0 {
		return compressZstd(data)
	}
	return buf.Bytes(), nil
}

func decompressLZ4(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrDecompression, err)
	}
	return buf.Bytes(), nil
}
