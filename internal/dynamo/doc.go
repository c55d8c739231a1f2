// Package dynamo provides the shared primitives of the force kernel.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Vec3]: a 3-vector of float64
//   - [Box]: an orthorhombic periodic simulation box
//   - [Sample]: aggregates produced by one force evaluation
//   - [Metric]: an observer of samples
//   - [ParallelFor]: chunked fan-out over an index range
//
// # Example
//
//	box, _ := dynamo.CubicBox(10)
//	d := box.MinimumImage(dynamo.Vec3{0.2 - 9.9, 0, 0}) // {0.3, 0, 0}
//
// # Errors
//
// Configuration faults are reported through the sentinel errors in this
// package, wrapped with context. Test with [errors.Is].
package dynamo
