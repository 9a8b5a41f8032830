package codec

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	cerrors "github.com/PolarWolf314/cpz/internal/errors"
)

const hexGroup = 4

// StringToHex encodes each UTF-16 code unit of s as a 4-digit uppercase hex
// group and prefixes the result with 0x. The first group is written without
// leading zeros; HexToString restores them by left-padding.
//
// s must be valid UTF-8, otherwise ErrInvalidText is returned.
func StringToHex(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", cerrors.ErrInvalidText
	}
	units := utf16.Encode([]rune(s))

	var b strings.Builder
	b.Grow(2 + len(units)*hexGroup)
	b.WriteString("0x")
	for i, u := range units {
		if i == 0 {
			b.WriteString(strings.ToUpper(strconv.FormatUint(uint64(u), 16)))
			continue
		}
		fmt.Fprintf(&b, "%04X", u)
	}
	return b.String(), nil
}

// HexToString decodes a 0x-prefixed hex string four digits per UTF-16 code
// unit, left-padding with zeros to a multiple of four digits first.
func HexToString(h string) (string, error) {
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if rem := len(h) % hexGroup; rem != 0 {
		h = strings.Repeat("0", hexGroup-rem) + h
	}

	units := make([]uint16, 0, len(h)/hexGroup)
	for i := 0; i < len(h); i += hexGroup {
		u, err := strconv.ParseUint(h[i:i+hexGroup], 16, 16)
		if err != nil {
			return "", fmt.Errorf("invalid hex group %q at offset %d: %w", h[i:i+hexGroup], i, err)
		}
		units = append(units, uint16(u))
	}
	return string(utf16.Decode(units)), nil
}
