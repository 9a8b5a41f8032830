// Package codec converts between integers, raw bytes, 32-bit word arrays and
// the 4-hex-digit text form used to move sealed passwords around.
//
// # Integers
//
// Container length fields hold minimal little-endian integers inside a
// fixed-width, zero-padded slot. NumberToBytes emits as many bytes as the
// value needs (a single zero byte for zero), and BytesToNumber sums
// byte[i] * 256^i, so slot padding never changes the decoded value.
//
// # Word Arrays
//
// The stream cipher works on big-endian 32-bit words. WordsFromBytes packs
// bytes four at a time and zero-pads the final word. BytesFromWords reverses
// this without an explicit length: it drops as many trailing bytes as the
// final word has zero low-order bytes. Callers that know the exact length one
// level up use WordArray.Bytes instead.
//
// # Hex Text
//
// StringToHex maps each UTF-16 code unit to a 4-digit hex group and
// HexToString is its exact inverse for valid UTF-8 input. The grouping is part of the sealed
// secret transport format and must not change.
package codec
