package frame

import "hash/crc32"

// Checksum returns the CRC-32 (IEEE polynomial) of b. Every frame of a
// split file carries this value computed over the whole original file,
// and reassembly recomputes it to prove integrity.
func Checksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}
