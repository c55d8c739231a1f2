package potentials_test

import (
	"errors"
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ljcell/internal/celllist"
	"github.com/san-kum/ljcell/internal/dynamo"
	"github.com/san-kum/ljcell/internal/lattice"
	"github.com/san-kum/ljcell/internal/potentials"
)

// energyAtCutoff25 is 4*s6*(s6-1) with s6 = 1/2.5^6, the shift for sigma=epsilon=1, rc=2.5.
const energyAtCutoff25 = 4 * 0.004096 * (0.004096 - 1)

func cubicGrid(l, minCell float64) (dynamo.Box, *celllist.Grid) {
	box, err := dynamo.CubicBox(l)
	Expect(err).NotTo(HaveOccurred())
	grid, err := celllist.NewGrid(box, minCell)
	Expect(err).NotTo(HaveOccurred())
	return box, grid
}

func newLJ(sigma, epsilon, rc float64, opts ...potentials.Option) *potentials.LennardJones {
	lj, err := potentials.NewLennardJones(sigma, epsilon, rc, opts...)
	Expect(err).NotTo(HaveOccurred())
	return lj
}

func randomConfig(n int, box dynamo.Box, seed int64) []dynamo.Vec3 {
	positions, err := lattice.Random(n, box, 0.85, rand.New(rand.NewSource(seed)))
	Expect(err).NotTo(HaveOccurred())
	return positions
}

func expectVecClose(got, want dynamo.Vec3, tol float64) {
	for axis := range got {
		ExpectWithOffset(1, got[axis]).To(BeNumerically("~", want[axis], tol), "axis %d", axis)
	}
}

var _ = Describe("LennardJones", func() {
	Context("construction", func() {
		DescribeTable("rejects invalid parameters",
			func(sigma, epsilon, rc float64) {
				_, err := potentials.NewLennardJones(sigma, epsilon, rc)
				Expect(errors.Is(err, dynamo.ErrInvalidParameter)).To(BeTrue())
			},
			Entry("zero sigma", 0.0, 1.0, 2.5),
			Entry("negative sigma", -1.0, 1.0, 2.5),
			Entry("negative epsilon", 1.0, -0.1, 2.5),
			Entry("zero cutoff", 1.0, 1.0, 0.0),
			Entry("NaN sigma", math.NaN(), 1.0, 2.5),
			Entry("infinite cutoff", 1.0, 1.0, math.Inf(1)),
		)

		It("accepts a zero epsilon", func() {
			lj := newLJ(1, 0, 2.5)
			Expect(lj.PotentialEnergyAtCutoff()).To(BeZero())
		})

		It("precomputes the energy at the cutoff", func() {
			lj := newLJ(1, 1, 2.5)
			Expect(lj.PotentialEnergyAtCutoff()).To(BeNumerically("~", energyAtCutoff25, 1e-15))
			Expect(lj.Sigma()).To(Equal(1.0))
			Expect(lj.Epsilon()).To(Equal(1.0))
			Expect(lj.CutoffRadius()).To(Equal(2.5))
			Expect(lj.Workers()).To(Equal(1))
		})
	})

	Context("pair functions", func() {
		var lj *potentials.LennardJones

		BeforeEach(func() {
			lj = newLJ(1, 1, 2.5)
		})

		It("is continuous at the cutoff", func() {
			rc2 := 2.5 * 2.5
			Expect(lj.PairEnergy(rc2)).To(BeZero())
			Expect(lj.PairEnergy(math.Nextafter(rc2, 0))).To(BeNumerically("~", 0, 1e-12))
			Expect(lj.PairEnergy(rc2 * (1 - 1e-9))).To(BeNumerically("~", 0, 1e-9))
		})

		It("produces nothing beyond the cutoff", func() {
			for _, r := range []float64{2.5, 2.6, 3, 10} {
				Expect(lj.PairEnergy(r * r)).To(BeZero())
				Expect(lj.PairForceFactor(r * r)).To(BeZero())
			}
		})

		It("keeps the shifted energy continuous while the force jumps", func() {
			prev := lj.PairEnergy(2.3 * 2.3)
			for r := 2.3; r < 2.7; r += 0.001 {
				e := lj.PairEnergy(r * r)
				Expect(math.Abs(e - prev)).To(BeNumerically("<", 1e-4))
				prev = e
			}
			inside := lj.PairForceFactor(math.Nextafter(2.5*2.5, 0))
			Expect(inside).NotTo(BeZero())
		})

		It("matches the reference scenario at r = sigma", func() {
			Expect(lj.PairForceFactor(1)).To(BeNumerically("~", -24, 1e-12))
			Expect(lj.PairEnergy(1)).To(BeNumerically("~", -energyAtCutoff25, 1e-12))
		})
	})

	Context("two atoms", func() {
		var (
			box  dynamo.Box
			grid *celllist.Grid
			lj   *potentials.LennardJones
		)

		BeforeEach(func() {
			box, grid = cubicGrid(10, 2.5)
			lj = newLJ(1, 1, 2.5)
			Expect(lj.Validate(box, grid)).To(Succeed())
		})

		It("evaluates the reference scenario", func() {
			grid.Build([]dynamo.Vec3{{5, 5, 5}, {6, 5, 5}})
			lj.CalculateForcesAndEnergy(box, grid)

			Expect(lj.PotentialEnergy()).To(BeNumerically("~", -energyAtCutoff25, 1e-12))
			Expect(lj.PressureVirial()).To(BeNumerically("~", -24, 1e-12))
			Expect(lj.NumPairsComputed()).To(Equal(uint64(1)))

			f := grid.Forces(nil)
			expectVecClose(f[0], dynamo.Vec3{-24, 0, 0}, 1e-12)
			expectVecClose(f[1], dynamo.Vec3{24, 0, 0}, 1e-12)
		})

		It("applies equal and opposite forces in both variants", func() {
			positions := []dynamo.Vec3{{4.1, 5.2, 4.9}, {5.0, 4.6, 5.3}}
			for _, energy := range []bool{false, true} {
				grid.Build(positions)
				if energy {
					lj.CalculateForcesAndEnergy(box, grid)
				} else {
					lj.CalculateForces(box, grid)
				}
				f := grid.Forces(nil)
				Expect(f[0].Norm()).To(BeNumerically(">", 0))
				for axis := range f[0] {
					Expect(f[0][axis]).To(Equal(-f[1][axis]))
				}
			}
		})

		It("uses the nearest periodic image", func() {
			box, grid = cubicGrid(10, 1)
			lj = newLJ(0.3, 1, 1)
			Expect(lj.Validate(box, grid)).To(Succeed())

			grid.Build([]dynamo.Vec3{{0.2, 5, 5}, {9.9, 5, 5}})
			lj.CalculateForcesAndEnergy(box, grid)

			Expect(lj.PotentialEnergy()).To(BeNumerically("~", lj.PairEnergy(0.3*0.3), 1e-9))
			Expect(lj.PressureVirial()).To(BeNumerically("~", lj.PairForceFactor(0.09)*0.09*0.3, 1e-9))

			f := grid.Forces(nil)
			// At r = sigma the pair repels: A is pushed away from B's image at x = -0.1.
			Expect(f[0][0]).To(BeNumerically(">", 0))
			Expect(f[1][0]).To(BeNumerically("<", 0))
		})

		It("ignores a pair exactly at the cutoff", func() {
			grid.Build([]dynamo.Vec3{{1, 5, 5}, {3.5, 5, 5}})
			lj.CalculateForcesAndEnergy(box, grid)

			Expect(lj.PotentialEnergy()).To(BeZero())
			Expect(lj.PressureVirial()).To(BeZero())
			for _, f := range grid.Forces(nil) {
				Expect(f).To(Equal(dynamo.Vec3{}))
			}
			Expect(lj.NumPairsComputed()).To(Equal(uint64(1)))
		})

		It("sweeps across the cutoff with a continuous energy", func() {
			prev := math.NaN()
			for r := 2.40; r <= 2.60; r += 0.005 {
				grid.Build([]dynamo.Vec3{{3, 5, 5}, {3 + r, 5, 5}})
				lj.CalculateForcesAndEnergy(box, grid)
				e := lj.PotentialEnergy()
				f := grid.Forces(nil)
				d := (3 + r) - 3
				if d*d >= 2.5*2.5 {
					Expect(e).To(BeZero())
					Expect(f[0]).To(Equal(dynamo.Vec3{}))
				} else {
					Expect(e).To(BeNumerically("<", 0))
				}
				if !math.IsNaN(prev) {
					Expect(math.Abs(e - prev)).To(BeNumerically("<", 1e-3))
				}
				prev = e
			}
		})

		It("does not depend on insertion order", func() {
			p, q := dynamo.Vec3{2.3, 5, 5}, dynamo.Vec3{3.4, 5.2, 4.8}

			grid.Build([]dynamo.Vec3{p, q})
			lj.CalculateForcesAndEnergy(box, grid)
			e1, v1 := lj.PotentialEnergy(), lj.PressureVirial()
			f1 := grid.Forces(nil)

			grid.Build([]dynamo.Vec3{q, p})
			lj.CalculateForcesAndEnergy(box, grid)
			e2, v2 := lj.PotentialEnergy(), lj.PressureVirial()
			f2 := grid.Forces(nil)

			Expect(e2).To(BeNumerically("~", e1, 1e-12))
			Expect(v2).To(BeNumerically("~", v1, 1e-12))
			expectVecClose(f2[1], f1[0], 1e-12)
			expectVecClose(f2[0], f1[1], 1e-12)
		})

		It("adds to the accumulators instead of overwriting them", func() {
			grid.Build([]dynamo.Vec3{{5, 5, 5}, {6.1, 5, 5}})
			lj.CalculateForcesAndEnergy(box, grid)
			once := grid.Forces(nil)
			e := lj.PotentialEnergy()

			lj.CalculateForcesAndEnergy(box, grid)
			twice := grid.Forces(nil)

			expectVecClose(twice[0], once[0].Scale(2), 1e-12)
			expectVecClose(twice[1], once[1].Scale(2), 1e-12)
			Expect(lj.PotentialEnergy()).To(Equal(e))
			Expect(lj.NumPairsComputed()).To(Equal(uint64(2)))
		})

		It("produces nothing with a zero epsilon", func() {
			lj = newLJ(1, 0, 2.5)
			grid.Build([]dynamo.Vec3{{5, 5, 5}, {5.9, 5, 5}})
			lj.CalculateForcesAndEnergy(box, grid)

			Expect(lj.PotentialEnergy()).To(BeZero())
			Expect(lj.PressureVirial()).To(BeZero())
			Expect(grid.Forces(nil)[0]).To(Equal(dynamo.Vec3{}))
		})
	})

	Context("pair counting", func() {
		It("counts one pair per call in a single-cell grid", func() {
			box, grid := cubicGrid(10, 10)
			Expect(grid.Dims()).To(Equal([3]int{1, 1, 1}))
			lj := newLJ(1, 1, 2.5)
			Expect(lj.Validate(box, grid)).To(Succeed())

			grid.Build([]dynamo.Vec3{{5, 5, 5}, {6, 5, 5}})
			for call := 1; call <= 3; call++ {
				lj.CalculateForces(box, grid)
				Expect(lj.NumPairsComputed()).To(Equal(uint64(2*call - 1)))
				lj.CalculateForcesAndEnergy(box, grid)
				Expect(lj.NumPairsComputed()).To(Equal(uint64(2 * call)))
			}

			pairs, skipped := lj.CellPairs(grid)
			Expect(pairs).To(Equal(1))
			Expect(skipped).To(Equal(13))
		})

		It("counts pairs beyond the cutoff", func() {
			box, grid := cubicGrid(10, 2.5)
			lj := newLJ(1, 1, 2.5)
			grid.Build([]dynamo.Vec3{{1, 1, 1}, {3.5, 3.5, 3.5}})
			lj.CalculateForcesAndEnergy(box, grid)

			Expect(lj.NumPairsComputed()).To(Equal(uint64(1)))
			Expect(lj.PotentialEnergy()).To(BeZero())
		})

		DescribeTable("enumerates every atom pair once on small grids",
			func(minCell float64, dims int) {
				box, grid := cubicGrid(10, minCell)
				Expect(grid.Dims()).To(Equal([3]int{dims, dims, dims}))
				lj := newLJ(1, 1, 2.5)

				positions := randomConfig(120, box, 11)
				grid.Build(positions)
				lj.CalculateForces(box, grid)

				n := uint64(len(positions))
				Expect(lj.NumPairsComputed()).To(Equal(n * (n - 1) / 2))

				pairs, _ := lj.CellPairs(grid)
				c := dims * dims * dims
				Expect(pairs).To(Equal(c + c*(c-1)/2))
			},
			Entry("1x1x1", 10.0, 1),
			Entry("2x2x2", 5.0, 2),
			Entry("3x3x3", 3.0, 3),
		)

		It("walks 14 cell pairs per cell on larger grids", func() {
			_, grid := cubicGrid(10, 2.5)
			lj := newLJ(1, 1, 2.5)
			pairs, skipped := lj.CellPairs(grid)
			Expect(pairs).To(Equal(14 * 64))
			Expect(skipped).To(BeZero())
		})
	})

	Context("against the direct all-pairs reference", func() {
		DescribeTable("matches energy, virial and forces",
			func(rc, minCell float64, workers int) {
				box, grid := cubicGrid(10, minCell)
				lj := newLJ(1, 1, rc, potentials.WithWorkers(workers))
				Expect(lj.Validate(box, grid)).To(Succeed())

				positions := randomConfig(300, box, 42)
				grid.Build(positions)
				lj.CalculateForcesAndEnergy(box, grid)
				ref := lj.Direct(box, positions)

				Expect(ref.Interacting).To(BeNumerically(">", 0))
				Expect(lj.PotentialEnergy()).To(BeNumerically("~", ref.PotentialEnergy, 1e-8))
				Expect(lj.PressureVirial()).To(BeNumerically("~", ref.PressureVirial, 1e-7))

				forces := grid.Forces(nil)
				var total dynamo.Vec3
				for i := range forces {
					expectVecClose(forces[i], ref.Forces[i], 1e-8)
					total = total.Add(forces[i])
				}
				expectVecClose(total, dynamo.Vec3{}, 1e-8)
			},
			Entry("4x4x4 serial", 2.5, 2.5, 1),
			Entry("3x3x3 serial", 3.2, 3.2, 1),
			Entry("2x2x2 serial", 4.5, 4.5, 1),
			Entry("4x4x4 with 4 workers", 2.5, 2.5, 4),
			Entry("3x3x3 with 3 workers", 3.2, 3.2, 3),
			Entry("5x5x5 with 8 workers", 2.0, 2.0, 8),
		)

		It("matches on an FCC crystal", func() {
			positions, box, err := lattice.FCC(6, 0.8442)
			Expect(err).NotTo(HaveOccurred())
			lattice.Jitter(positions, box, 0.05, rand.New(rand.NewSource(3)))

			grid, err := celllist.NewGrid(box, 2.5)
			Expect(err).NotTo(HaveOccurred())
			lj := newLJ(1, 1, 2.5)
			Expect(lj.Validate(box, grid)).To(Succeed())

			grid.Build(positions)
			lj.CalculateForcesAndEnergy(box, grid)
			ref := lj.Direct(box, positions)

			Expect(lj.PotentialEnergy()).To(BeNumerically("~", ref.PotentialEnergy, 1e-8))
			Expect(lj.PotentialEnergy() / float64(len(positions))).To(BeNumerically("<", -5))
		})
	})

	Context("with workers", func() {
		It("agrees with the serial path and accumulates across calls", func() {
			box, grid := cubicGrid(10, 2.5)
			positions := randomConfig(300, box, 5)

			serial := newLJ(1, 1, 2.5)
			grid.Build(positions)
			serial.CalculateForcesAndEnergy(box, grid)
			want := grid.Forces(nil)

			for _, workers := range []int{2, 4, 7} {
				parallel := newLJ(1, 1, 2.5, potentials.WithWorkers(workers))
				grid.Build(positions)
				parallel.CalculateForcesAndEnergy(box, grid)
				parallel.CalculateForcesAndEnergy(box, grid)

				Expect(parallel.PotentialEnergy()).To(BeNumerically("~", serial.PotentialEnergy(), 1e-8))
				Expect(parallel.PressureVirial()).To(BeNumerically("~", serial.PressureVirial(), 1e-7))
				Expect(parallel.NumPairsComputed()).To(Equal(2 * serial.NumPairsComputed()))

				got := grid.Forces(nil)
				for i := range got {
					expectVecClose(got[i], want[i].Scale(2), 1e-8)
				}
			}
		})

		It("uses one worker per CPU for zero", func() {
			lj := newLJ(1, 1, 2.5, potentials.WithWorkers(0))
			Expect(lj.Workers()).To(Equal(dynamo.DefaultWorkers()))
		})
	})

	Context("debug checks", func() {
		var (
			box  dynamo.Box
			grid *celllist.Grid
		)

		BeforeEach(func() {
			box, grid = cubicGrid(10, 10)
		})

		It("clamps and reports atoms at zero separation", func() {
			lj := newLJ(1, 1, 2.5, potentials.WithDebugChecks())
			grid.Build([]dynamo.Vec3{{5, 5, 5}, {5, 5, 5}, {6, 5, 5}})
			lj.CalculateForcesAndEnergy(box, grid)

			err := lj.Err()
			Expect(errors.Is(err, dynamo.ErrDegenerateSeparation)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("1 pair"))
			for _, f := range grid.Forces(nil) {
				Expect(f.IsValid()).To(BeTrue())
			}
			Expect(math.IsNaN(lj.PotentialEnergy())).To(BeFalse())

			grid.Build([]dynamo.Vec3{{5, 5, 5}, {6, 5, 5}})
			lj.CalculateForces(box, grid)
			Expect(lj.Err()).NotTo(HaveOccurred())
		})

		It("lets a degenerate pair poison the forces without checks", func() {
			lj := newLJ(1, 1, 2.5)
			grid.Build([]dynamo.Vec3{{5, 5, 5}, {5, 5, 5}})
			lj.CalculateForces(box, grid)

			Expect(lj.Err()).NotTo(HaveOccurred())
			Expect(grid.Forces(nil)[0].IsValid()).To(BeFalse())
		})
	})

	Context("validation", func() {
		It("rejects cells smaller than the cutoff", func() {
			box, grid := cubicGrid(10, 2)
			lj := newLJ(1, 1, 2.5)
			err := lj.Validate(box, grid)
			Expect(errors.Is(err, dynamo.ErrGridCutoffMismatch)).To(BeTrue())
		})

		It("rejects a cutoff beyond half the box", func() {
			box, grid := cubicGrid(4, 2.5)
			lj := newLJ(1, 1, 2.5)
			err := lj.Validate(box, grid)
			Expect(errors.Is(err, dynamo.ErrGridCutoffMismatch)).To(BeTrue())
		})

		It("rejects a grid built for another box", func() {
			_, grid := cubicGrid(10, 2.5)
			other, err := dynamo.CubicBox(12)
			Expect(err).NotTo(HaveOccurred())
			lj := newLJ(1, 1, 2.5)
			Expect(errors.Is(lj.Validate(other, grid), dynamo.ErrGridCutoffMismatch)).To(BeTrue())
		})

		It("accepts a cutoff of exactly half the box", func() {
			box, grid := cubicGrid(5, 2.5)
			lj := newLJ(1, 1, 2.5)
			Expect(lj.Validate(box, grid)).To(Succeed())
		})
	})

	Context("instrumentation", func() {
		It("reports each call to the timing callback", func() {
			var names []string
			var total time.Duration
			lj := newLJ(1, 1, 2.5, potentials.WithTiming(func(name string, d time.Duration) {
				names = append(names, name)
				total += d
			}))

			box, grid := cubicGrid(10, 2.5)
			grid.Build([]dynamo.Vec3{{5, 5, 5}, {6, 5, 5}})
			lj.CalculateForces(box, grid)
			lj.CalculateForcesAndEnergy(box, grid)

			Expect(names).To(Equal([]string{"calculateForces", "calculateForcesAndEnergy"}))
			Expect(total).To(BeNumerically(">=", 0))
		})
	})
})
