// Package snapshot persists finalized locators.
//
// # Format
//
// A snapshot is a fixed header, a payload and a checksum trailer, all
// little-endian:
//
//	magic       [4]byte  "PMRG"
//	version     uint16
//	compression uint8    None, Zstd or LZ4
//	reserved    uint8
//	rawSize     uint64   size of the uncompressed body
//	payloadSize uint64   size of the payload that follows
//	payload     []byte   body, compressed as announced
//	checksum    uint32   CRC32C of the uncompressed body
//
// The body holds the grid bounds and divisions, the tolerance, the points,
// the id list of every bucket and the attribute arrays with their schema.
// Decoding rebuilds a finalized locator and checks its invariants.
//
// # Publishing
//
// Publish writes a snapshot blob and then points the CURRENT blob at it.
// With a plain store the last writer wins; s3.DDBCommitStore turns the
// pointer update into a conditional commit.
package snapshot
