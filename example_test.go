package pointmerge_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/pointmerge"
	"github.com/hupe1980/pointmerge/attribute"
	"github.com/hupe1980/pointmerge/geom"
	"github.com/hupe1980/pointmerge/locator"
)

// Example_merge demonstrates merging two producers that share a boundary.
func Example_merge() {
	grid, err := pointmerge.NewGrid(geom.Cube(0, 2), 0.5)
	if err != nil {
		log.Fatal(err)
	}

	left, _ := locator.New(grid, 1e-6)
	right, _ := locator.New(grid, 1e-6)

	// Both producers own the points on the shared face x = 1.
	for _, p := range []geom.Point{geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(1, 1, 0)} {
		if _, _, err := left.InsertUnique(p, nil); err != nil {
			log.Fatal(err)
		}
	}
	for _, p := range []geom.Point{geom.Pt(1, 0, 0), geom.Pt(1, 1, 0), geom.Pt(2, 0, 0)} {
		if _, _, err := right.InsertUnique(p, nil); err != nil {
			log.Fatal(err)
		}
	}

	res, err := pointmerge.Merge(context.Background(), []*locator.Locator{left, right})
	if err != nil {
		log.Fatal(err)
	}
	defer res.Release()

	fmt.Println("points:", res.NewPoints)
	a, _ := res.Remaps[0].Get(1)
	b, _ := res.Remaps[1].Get(0)
	fmt.Println("shared point has one id:", a == b)
	// Output:
	// points: 4
	// shared point has one id: true
}

// Example_attributes demonstrates carrying per-point attributes through a
// merge.
func Example_attributes() {
	grid := geom.MustGrid(geom.Cube(0, 1), geom.Divisions{2, 2, 2})

	newProducer := func() *locator.Locator {
		attrs, err := attribute.NewSet(attribute.NewArray[float64]("pressure", 1))
		if err != nil {
			log.Fatal(err)
		}
		l, err := locator.New(grid, 0, locator.WithAttributes(attrs))
		if err != nil {
			log.Fatal(err)
		}
		return l
	}

	a, b := newProducer(), newProducer()
	_, _, _ = a.InsertUnique(geom.Pt(0.25, 0.25, 0.25), attribute.Record{"pressure": {101.3}})
	_, _, _ = b.InsertUnique(geom.Pt(0.75, 0.75, 0.75), attribute.Record{"pressure": {99.8}})

	res, err := pointmerge.Merge(context.Background(), []*locator.Locator{a, b}, pointmerge.WithWorkers(1))
	if err != nil {
		log.Fatal(err)
	}
	defer res.Release()

	id, _ := res.Remaps[1].Get(0)
	rec, _ := res.Dst.Attributes().Tuple(id)
	fmt.Println(rec["pressure"])
	// Output: [99.8]
}
