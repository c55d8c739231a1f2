package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/ljcell/internal/dynamo"
)

// RDF histograms all pair distances below rMax into bins shells and
// normalizes them by the ideal-gas count at the system density. r holds the
// shell centres.
func RDF(box dynamo.Box, positions []dynamo.Vec3, rMax float64, bins int) (r, g []float64, err error) {
	if !(rMax > 0) || rMax > box.ShortestEdge()/2 {
		return nil, nil, fmt.Errorf("%w: rMax must be in (0, %g], got %g", dynamo.ErrInvalidParameter, box.ShortestEdge()/2, rMax)
	}
	if bins < 1 {
		return nil, nil, fmt.Errorf("%w: need at least 1 bin, got %d", dynamo.ErrInvalidParameter, bins)
	}
	n := len(positions)
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 positions, got %d", dynamo.ErrInvalidParameter, n)
	}

	wrapped := make([]dynamo.Vec3, n)
	for i, p := range positions {
		wrapped[i] = box.Wrap(p)
	}

	width := rMax / float64(bins)
	counts := make([]float64, bins)
	rMax2 := rMax * rMax
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := box.MinimumImage(wrapped[i].Sub(wrapped[j]))
			dr2 := d.Dot(d)
			if dr2 >= rMax2 {
				continue
			}
			b := min(int(math.Sqrt(dr2)/width), bins-1)
			counts[b] += 2
		}
	}

	density := float64(n) / box.Volume()
	r = make([]float64, bins)
	g = make([]float64, bins)
	for b := range counts {
		lo, hi := float64(b)*width, float64(b+1)*width
		shell := 4.0 / 3.0 * math.Pi * (hi*hi*hi - lo*lo*lo)
		r[b] = lo + width/2
		g[b] = counts[b] / (float64(n) * density * shell)
	}
	return r, g, nil
}
