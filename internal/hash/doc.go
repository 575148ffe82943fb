// Package hash provides the checksums and fingerprints used by pointmerge.
//
// # CRC32-Castagnoli (CRC32C)
//
// Snapshot bodies carry a CRC32C trailer. The table is computed once and the
// standard library uses SSE4.2 / ARM CRC instructions when available.
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	checksum := h.Sum32()
//
// # Fingerprints
//
// Attribute schemas are compared by a 64-bit xxHash fingerprint of their
// canonical encoding, so a merge can reject incompatible attribute sets with
// a single integer comparison:
//
//	fp := hash.NewFingerprint()
//	fp.String("T")
//	fp.Uint64(uint64(typ))
//	sum := fp.Sum64()
package hash
