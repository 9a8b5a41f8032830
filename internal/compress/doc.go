// Package compress is the compression primitive for .cpz payloads.
//
// Payloads are compressed at the highest effort the codec offers before
// encryption, since ciphertext is high-entropy and does not compress.
//
//   - zstd (default): klauspost/compress at SpeedBestCompression
//   - lz4: pierrec/lz4 frames at Level9
//
// Decompress identifies the codec from the frame magic number, so a
// container does not need to record which codec produced it.
package compress
