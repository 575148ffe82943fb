package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint accumulates a 64-bit xxHash over a sequence of typed fields.
// Every field is length- or width-prefixed so that ("ab","c") and ("a","bc")
// produce different sums.
type Fingerprint struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewFingerprint returns an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{d: xxhash.New()}
}

// String mixes s into the fingerprint.
func (f *Fingerprint) String(s string) {
	f.Uint64(uint64(len(s)))
	_, _ = f.d.WriteString(s)
}

// Uint64 mixes v into the fingerprint.
func (f *Fingerprint) Uint64(v uint64) {
	binary.LittleEndian.PutUint64(f.buf[:], v)
	_, _ = f.d.Write(f.buf[:])
}

// Sum64 returns the current fingerprint.
func (f *Fingerprint) Sum64() uint64 {
	return f.d.Sum64()
}
