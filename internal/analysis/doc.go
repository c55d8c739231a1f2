// Package analysis characterizes particle configurations.
//
//   - [RDF]: radial distribution function g(r) under the minimum image
//   - [StructureFactor]: static structure factor S(k) along one box axis
//
// A crystal shows sharp g(r) shells and a Bragg peak in S(k) at the lattice
// plane spacing. A liquid shows a few damped g(r) oscillations and no peak
// of order N.
package analysis
