// Package analysis provides chaos diagnostics over recorded angle
// series: spectral content and Lyapunov-exponent estimation.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform by radix-2
// Cooley-Tukey. The input length must be a power of two (pad with
// zeros first; see NextPow2).
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("analysis: fft requires power-of-2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	fe := FFT(even)
	fo := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = fe[k] + w*fo[k]
		result[k+n/2] = fe[k] - w*fo[k]
	}

	return result
}

// PowerSpectrum returns magnitudes of the positive-frequency half of
// the transform.
func PowerSpectrum(data []float64) []float64 {
	f := FFT(data)
	ps := make([]float64, len(f)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}
	return ps
}

// NextPow2 returns the smallest power of two >= n (minimum 1).
func NextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// DominantFrequency returns the peak frequency in hertz of a series
// sampled every dt seconds, ignoring the DC bin.
func DominantFrequency(data []float64, dt float64) float64 {
	padded := make([]float64, NextPow2(len(data)))
	copy(padded, data)

	ps := PowerSpectrum(padded)
	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	return float64(maxIdx) / (float64(len(padded)) * dt)
}
