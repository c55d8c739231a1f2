package potentials_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ljcell/internal/celllist"
	"github.com/san-kum/ljcell/internal/lattice"
)

// swappedGrid presents a celllist.Grid with two flat cell indices exchanged.
// The cells share storage with the wrapped grid.
type swappedGrid struct {
	*celllist.Grid
	a, b  int
	cells []celllist.Cell
}

func newSwappedGrid(g *celllist.Grid, a, b int) *swappedGrid {
	cells := append([]celllist.Cell(nil), g.Cells()...)
	cells[a], cells[b] = cells[b], cells[a]
	return &swappedGrid{Grid: g, a: a, b: b, cells: cells}
}

func (s *swappedGrid) swap(i int) int {
	switch i {
	case s.a:
		return s.b
	case s.b:
		return s.a
	}
	return i
}

func (s *swappedGrid) Index(cx, cy, cz int) int { return s.swap(s.Grid.Index(cx, cy, cz)) }

func (s *swappedGrid) IndexPeriodic(cx, cy, cz int) int {
	return s.swap(s.Grid.IndexPeriodic(cx, cy, cz))
}

func (s *swappedGrid) Cells() []celllist.Cell { return s.cells }

var _ = Describe("cell pair cache", func() {
	It("rebuilds the pair list for a grid with a different layout", func() {
		box, grid := cubicGrid(10, 2.5)
		Expect(grid.Dims()).To(Equal([3]int{4, 4, 4}))

		positions, err := lattice.Random(300, box, 0.9, rand.New(rand.NewSource(5)))
		Expect(err).NotTo(HaveOccurred())
		grid.Build(positions)

		lj := newLJ(1, 1, 2.5)
		ref := lj.Direct(box, positions)

		lj.CalculateForcesAndEnergy(box, grid)
		Expect(lj.PotentialEnergy()).To(BeNumerically("~", ref.PotentialEnergy, 1e-9*math.Abs(ref.PotentialEnergy)))

		swapped := newSwappedGrid(grid, grid.Index(0, 0, 0), grid.Index(0, 0, 2))
		Expect(lj.Validate(box, swapped)).To(Succeed())
		for i := 0; i < 2; i++ {
			grid.ZeroForces()
			lj.CalculateForcesAndEnergy(box, swapped)
			Expect(lj.PotentialEnergy()).To(BeNumerically("~", ref.PotentialEnergy, 1e-9*math.Abs(ref.PotentialEnergy)))
			Expect(lj.PressureVirial()).To(BeNumerically("~", ref.PressureVirial, 1e-9*math.Abs(ref.PressureVirial)))
		}

		grid.ZeroForces()
		lj.CalculateForcesAndEnergy(box, grid)
		Expect(lj.PotentialEnergy()).To(BeNumerically("~", ref.PotentialEnergy, 1e-9*math.Abs(ref.PotentialEnergy)))
	})

	It("reports the same pair count for both layouts", func() {
		_, grid := cubicGrid(10, 2.5)
		lj := newLJ(1, 1, 2.5)

		pairs, skipped := lj.CellPairs(grid)
		Expect(pairs).To(Equal(64 * 14))
		Expect(skipped).To(BeZero())

		pairs, skipped = lj.CellPairs(newSwappedGrid(grid, 0, 2))
		Expect(pairs).To(Equal(64 * 14))
		Expect(skipped).To(BeZero())
	})
})
