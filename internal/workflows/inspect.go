package workflows

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/PolarWolf314/cpz/internal/compress"
	"github.com/PolarWolf314/cpz/internal/container"
	"github.com/PolarWolf314/cpz/internal/streamcipher"
)

// InspectOptions configures the inspect workflow.
type InspectOptions struct {
	Path string
}

// InspectResult describes a container without writing anything.
type InspectResult struct {
	Path     string
	FileSize int

	OriginalLength int
	CipherLength   int

	// Key, IV and Salt are the hex header slots.
	Key  string
	IV   string
	Salt string

	// Codec is detected from the decrypted payload.
	Codec compress.Codec
}

// Inspect reads the header of a .cpz file and detects its compression codec.
//
// Returns ErrMalformedContainer if the header is invalid and ErrDecompression
// if the payload is not a known compressed stream.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.Path, err)
	}

	header, err := container.Inspect(data)
	if err != nil {
		return nil, err
	}

	params, _, _, err := container.Unframe(data)
	if err != nil {
		return nil, err
	}
	payload, err := streamcipher.Cipher{}.Decrypt(params, "")
	if err != nil {
		return nil, err
	}
	codec, err := compress.Detect(payload.Bytes())
	if err != nil {
		return nil, err
	}

	return &InspectResult{
		Path:           opts.Path,
		FileSize:       len(data),
		OriginalLength: header.OriginalLength,
		CipherLength:   header.CipherLength,
		Key:            hex.EncodeToString(header.Key[:]),
		IV:             hex.EncodeToString(header.IV[:]),
		Salt:           hex.EncodeToString(header.Salt[:]),
		Codec:          codec,
	}, nil
}
