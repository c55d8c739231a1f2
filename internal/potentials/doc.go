// Package potentials evaluates short-range pair potentials over a cell list.
//
// [LennardJones] walks every cell together with 14 neighbor offsets, chosen so
// each unordered pair of cells (a cell with itself included) is visited once.
// Within a cell pair the minimum image and the cutoff are applied as 0/1
// factors instead of branches, and every atom pair is computed once with
// equal and opposite contributions to both atoms.
//
//	lj, err := potentials.NewLennardJones(1.0, 1.0, 2.5)
//	grid, _ := celllist.NewGrid(box, lj.CutoffRadius())
//	if err := lj.Validate(box, grid); err != nil { ... }
//	grid.Build(positions)
//	lj.CalculateForcesAndEnergy(box, grid)
//	forces := grid.Forces(nil)
//
// Force accumulators are added to, never cleared, so several potentials can
// be superposed on one grid. Zero them with [celllist.Grid.ZeroForces] first.
//
// # Concurrency
//
// [WithWorkers] spreads the cell pairs over goroutines. Each worker sums
// into private per-atom buffers that are merged into the cells after the
// parallel region, so no accumulator is written by two goroutines.
package potentials
