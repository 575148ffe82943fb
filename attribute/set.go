package attribute

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/pointmerge/internal/hash"
)

// Set is a collection of named arrays sharing one id space.
type Set struct {
	cols   []Column
	byName map[string]int
	fp     uint64
}

// NewSet returns a set holding the given arrays.
func NewSet(cols ...Column) (*Set, error) {
	s := &Set{byName: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	if len(cols) == 0 {
		s.refingerprint()
	}
	return s, nil
}

// Add appends an array to the set.
func (s *Set) Add(c Column) error {
	if _, ok := s.byName[c.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, c.Name())
	}
	s.byName[c.Name()] = len(s.cols)
	s.cols = append(s.cols, c)
	s.refingerprint()
	return nil
}

// Get returns the array with the given name.
func (s *Set) Get(name string) (Column, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.cols[i], true
}

// Columns returns the arrays in insertion order.
func (s *Set) Columns() []Column {
	if s == nil {
		return nil
	}
	return s.cols
}

// NumColumns returns the number of arrays.
func (s *Set) NumColumns() int {
	if s == nil {
		return 0
	}
	return len(s.cols)
}

// Schema returns the fields sorted by name.
func (s *Set) Schema() []Field {
	if s == nil {
		return nil
	}
	fields := make([]Field, len(s.cols))
	for i, c := range s.cols {
		fields[i] = Field{Name: c.Name(), Type: c.Type(), Components: c.Components()}
	}
	slices.SortFunc(fields, func(a, b Field) int { return strings.Compare(a.Name, b.Name) })
	return fields
}

// Fingerprint returns the schema fingerprint. Sets with equal fingerprints
// are compatible.
func (s *Set) Fingerprint() uint64 {
	if s == nil {
		return 0
	}
	return s.fp
}

// CheckCompatible returns ErrSchemaMismatch unless o has the same schema.
func (s *Set) CheckCompatible(o *Set) error {
	if s.NumColumns() == 0 && o.NumColumns() == 0 {
		return nil
	}
	if s.Fingerprint() != o.Fingerprint() {
		return fmt.Errorf("%w: %v vs %v", ErrSchemaMismatch, s.Schema(), o.Schema())
	}
	return nil
}

// CopyTuple copies the tuple at srcID of every array in src into destID of
// the matching array in s. Concurrent calls with distinct destID are safe
// once s has been reserved.
func (s *Set) CopyTuple(destID int64, src *Set, srcID int64) error {
	if err := s.CheckCompatible(src); err != nil {
		return err
	}
	for _, c := range s.Columns() {
		if err := c.copyFrom(destID, src.cols[src.byName[c.Name()]], srcID); err != nil {
			return err
		}
	}
	return nil
}

// SetTuple writes rec at id, growing arrays as needed. Arrays missing from
// rec receive a zero tuple. Nothing is written when rec does not fit the
// schema. Single-writer only.
func (s *Set) SetTuple(id int64, rec Record) error {
	if s == nil {
		if len(rec) > 0 {
			return fmt.Errorf("%w: record for a set without arrays", ErrSchemaMismatch)
		}
		return nil
	}
	for name, vals := range rec {
		c, ok := s.Get(name)
		if !ok {
			return fmt.Errorf("%w: unknown attribute %q", ErrSchemaMismatch, name)
		}
		if len(vals) != c.Components() {
			return fmt.Errorf("%w: %s expects %d components, got %d", ErrSchemaMismatch, name, c.Components(), len(vals))
		}
	}
	for _, c := range s.cols {
		c.setFloat64s(id, rec[c.Name()])
	}
	return nil
}

// Tuple returns the values of every array at id.
func (s *Set) Tuple(id int64) (Record, error) {
	rec := make(Record, s.NumColumns())
	for _, c := range s.Columns() {
		vals, err := c.Float64s(id)
		if err != nil {
			return nil, err
		}
		rec[c.Name()] = vals
	}
	return rec, nil
}

// Reserve grows every array to hold at least n tuples.
func (s *Set) Reserve(n int) {
	for _, c := range s.Columns() {
		c.Reserve(n)
	}
}

// Finalize sets the logical length of every array to n.
func (s *Set) Finalize(n int64) {
	for _, c := range s.Columns() {
		c.Finalize(n)
	}
}

// NewEmptyLike returns a set with the same schema and no tuples.
func (s *Set) NewEmptyLike() *Set {
	out := &Set{byName: make(map[string]int, s.NumColumns())}
	for _, c := range s.Columns() {
		_ = out.Add(c.emptyLike())
	}
	out.refingerprint()
	return out
}

func (s *Set) refingerprint() {
	f := hash.NewFingerprint()
	for _, field := range s.Schema() {
		f.String(field.Name)
		f.Uint64(uint64(field.Type))
		f.Uint64(uint64(field.Components))
	}
	s.fp = f.Sum64()
}
