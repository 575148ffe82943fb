package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/pointmerge/attribute"
	"github.com/hupe1980/pointmerge/geom"
	"github.com/hupe1980/pointmerge/internal/hash"
	"github.com/hupe1980/pointmerge/locator"
)

const (
	// Version is the format version written by Encode.
	Version uint16 = 1

	headerSize  = 24
	trailerSize = 4

	maxBodySize = 1 << 40
)

var magic = [4]byte{'P', 'M', 'R', 'G'}

// Encode writes a snapshot of l to w. l must be finalized.
func Encode(w io.Writer, l *locator.Locator, opts ...Option) error {
	o := applyOptions(opts)
	if l == nil || l.State() != locator.StateFinalized {
		return ErrNotFinalized
	}

	body, err := encodeBody(l)
	if err != nil {
		return err
	}
	payload, c, err := compress(body, o.compression)
	if err != nil {
		return fmt.Errorf("snapshot: compress: %w", err)
	}

	out := make([]byte, 0, headerSize+len(payload)+trailerSize)
	out = append(out, magic[:]...)
	out = binary.LittleEndian.AppendUint16(out, Version)
	out = append(out, byte(c), 0)
	out = binary.LittleEndian.AppendUint64(out, uint64(len(body)))
	out = binary.LittleEndian.AppendUint64(out, uint64(len(payload)))
	out = append(out, payload...)
	out = binary.LittleEndian.AppendUint32(out, hash.CRC32C(body))

	_, err = w.Write(out)
	return err
}

// Decode reads a snapshot from r and rebuilds the finalized locator.
func Decode(r io.Reader) (*locator.Locator, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) (*locator.Locator, error) {
	if len(data) < 4 || !bytes.Equal(data[:4], magic[:]) {
		return nil, ErrBadMagic
	}
	if len(data) < headerSize+trailerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorrupt, len(data))
	}
	if v := binary.LittleEndian.Uint16(data[4:]); v != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	c := Compression(data[6])
	rawSize := binary.LittleEndian.Uint64(data[8:])
	payloadSize := binary.LittleEndian.Uint64(data[16:])
	if payloadSize != uint64(len(data)-headerSize-trailerSize) || rawSize > maxBodySize {
		return nil, fmt.Errorf("%w: size fields do not match the data", ErrCorrupt)
	}
	payload := data[headerSize : headerSize+int(payloadSize)]
	sum := binary.LittleEndian.Uint32(data[headerSize+int(payloadSize):])

	body, err := decompress(payload, c, int(rawSize))
	if err != nil {
		return nil, err
	}
	if hash.CRC32C(body) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return decodeBody(body)
}

func encodeBody(l *locator.Locator) ([]byte, error) {
	g := l.Grid()
	b := g.Bounds()
	d := g.Divisions()
	pts := l.Points().Slice()

	out := make([]byte, 0, 64+len(pts)*32)
	for _, v := range []float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
		out = appendFloat64(out, v)
	}
	for _, n := range d {
		out = binary.LittleEndian.AppendUint32(out, uint32(n))
	}
	out = appendFloat64(out, l.Tolerance())

	out = binary.AppendUvarint(out, uint64(len(pts)))
	for _, p := range pts {
		out = appendFloat64(out, p.X)
		out = appendFloat64(out, p.Y)
		out = appendFloat64(out, p.Z)
	}

	for bkt := range l.NumBuckets() {
		ids := l.BucketIDs(bkt)
		out = binary.AppendUvarint(out, uint64(len(ids)))
		for _, id := range ids {
			out = binary.AppendUvarint(out, uint64(id))
		}
	}

	cols := l.Attributes().Columns()
	out = binary.AppendUvarint(out, uint64(len(cols)))
	for _, col := range cols {
		out = binary.AppendUvarint(out, uint64(len(col.Name())))
		out = append(out, col.Name()...)
		out = append(out, byte(col.Type()))
		out = binary.AppendUvarint(out, uint64(col.Components()))
		out = binary.AppendUvarint(out, uint64(col.Len()))
		var err error
		if out, err = attribute.AppendValues(out, col); err != nil {
			return nil, fmt.Errorf("snapshot: attribute %s: %w", col.Name(), err)
		}
	}
	return out, nil
}

func decodeBody(body []byte) (*locator.Locator, error) {
	r := &bodyReader{buf: body}

	var b geom.Bounds
	b.Min = geom.Pt(r.float64(), r.float64(), r.float64())
	b.Max = geom.Pt(r.float64(), r.float64(), r.float64())
	var d geom.Divisions
	for i := range d {
		d[i] = int(r.uint32())
	}
	tol := r.float64()
	if r.err != nil {
		return nil, r.err
	}
	grid, err := geom.NewGrid(b, d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	n := r.count(24)
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(r.float64(), r.float64(), r.float64())
	}

	// Every bucket list takes at least its one-byte count.
	if r.err == nil && grid.NumBuckets() > len(r.buf)-r.off {
		return nil, fmt.Errorf("%w: %d buckets in %d remaining bytes", ErrCorrupt, grid.NumBuckets(), len(r.buf)-r.off)
	}
	buckets := make([][]int64, grid.NumBuckets())
	for bkt := range buckets {
		k := r.count(1)
		if k == 0 {
			continue
		}
		ids := make([]int64, k)
		for i := range ids {
			ids[i] = int64(r.uvarint())
		}
		buckets[bkt] = ids
	}

	numCols := r.count(3)
	cols := make([]attribute.Column, 0, numCols)
	for range numCols {
		name := string(r.raw(r.count(1)))
		typ := attribute.Type(r.u8())
		comps := r.count(0)
		tuples := r.count(0)
		if r.err != nil {
			return nil, r.err
		}
		col, err := attribute.NewColumn(attribute.Field{Name: name, Type: typ, Components: comps})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if tuples != n {
			return nil, fmt.Errorf("%w: attribute %s has %d tuples for %d points", ErrCorrupt, name, tuples, n)
		}
		used, err := attribute.DecodeValues(col, int64(tuples), r.buf[r.off:])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		r.off += used
		cols = append(cols, col)
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.off != len(r.buf) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(r.buf)-r.off)
	}

	attrs, err := attribute.NewSet(cols...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	l, err := locator.Restore(grid, tol, pts, buckets, attrs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return l, nil
}

func appendFloat64(dst []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
}

// bodyReader decodes the body sequentially. The first error sticks and
// every later read returns zero values.
type bodyReader struct {
	buf []byte
	off int
	err error
}

func (r *bodyReader) fail(what string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: truncated %s at offset %d", ErrCorrupt, what, r.off)
	}
}

func (r *bodyReader) need(n int, what string) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || len(r.buf)-r.off < n {
		r.fail(what)
		return false
	}
	return true
}

func (r *bodyReader) u8() uint8 {
	if !r.need(1, "u8") {
		return 0
	}
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *bodyReader) raw(n int) []byte {
	if !r.need(n, "raw") {
		return nil
	}
	v := r.buf[r.off : r.off+n]
	r.off += n
	return v
}

func (r *bodyReader) uint32() uint32 {
	if !r.need(4, "uint32") {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *bodyReader) float64() float64 {
	if !r.need(8, "float64") {
		return 0
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.buf[r.off:]))
	r.off += 8
	return v
}

func (r *bodyReader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf[r.off:])
	if n <= 0 {
		r.fail("uvarint")
		return 0
	}
	r.off += n
	return v
}

// count reads a length prefix. Each counted element occupies at least
// minSize bytes, which bounds allocations on corrupt input.
func (r *bodyReader) count(minSize int) int {
	v := r.uvarint()
	if r.err != nil {
		return 0
	}
	if v > math.MaxInt32 || v*uint64(minSize) > uint64(len(r.buf)-r.off) {
		r.fail("length")
		return 0
	}
	return int(v)
}
