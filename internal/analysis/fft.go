package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/ljcell/internal/dynamo"
)

// StructureFactor bins positions into a density profile along axis and
// returns S(k_n) = |rho(k_n)|^2 / N for k_n = 2*pi*n / L, n = 0..bins/2.
// Binning limits the result to wavelengths well above L/bins.
func StructureFactor(box dynamo.Box, positions []dynamo.Vec3, axis, bins int) (k, s []float64, err error) {
	if axis < 0 || axis > 2 {
		return nil, nil, fmt.Errorf("%w: axis must be 0, 1 or 2, got %d", dynamo.ErrInvalidParameter, axis)
	}
	if bins < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 bins, got %d", dynamo.ErrInvalidParameter, bins)
	}
	if len(positions) == 0 {
		return nil, nil, fmt.Errorf("%w: no positions", dynamo.ErrInvalidParameter)
	}

	l := box.L[axis]
	profile := make([]float64, bins)
	for _, p := range positions {
		x := box.Wrap(p)[axis]
		b := min(int(x/l*float64(bins)), bins-1)
		profile[b]++
	}

	spectrum := fft.FFTReal(profile)

	n := float64(len(positions))
	k = make([]float64, bins/2+1)
	s = make([]float64, bins/2+1)
	for i := range s {
		k[i] = 2 * math.Pi * float64(i) / l
		a := cmplx.Abs(spectrum[i])
		s[i] = a * a / n
	}
	return k, s, nil
}

// PowerSpectrum returns |X_k| for k = 0..len(data)/2 of a real series.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2+1)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}
