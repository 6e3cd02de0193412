// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package wavelet

import (
	"fmt"
	"math"
)

// Mode is the signal extension mode used at the boundaries of the transform.
type Mode string

const (
	ModeZero      Mode = "zero"      // extend with zeros
	ModeConstant  Mode = "constant"  // replicate the edge samples
	ModeSymmetric Mode = "symmetric" // mirror about the edges
	ModePeriodic  Mode = "periodic"  // wrap around
)

func (m Mode) valid() bool {
	switch m {
	case ModeZero, ModeConstant, ModeSymmetric, ModePeriodic:
		return true
	}
	return false
}

// sampleAt reads x at position p, which may lie outside [0, len(x)),
// extending the signal according to mode.
func sampleAt(x []float64, p int, mode Mode) (float64, error) {
	n := len(x)
	if p >= 0 && p < n {
		return x[p], nil
	}

	switch mode {
	case ModeZero:
		return 0, nil
	case ModeConstant:
		if p < 0 {
			return x[0], nil
		}
		return x[n-1], nil
	case ModeSymmetric:
		// Sawtooth with period 2n: ... x1 x0 | x0 x1 ... xn-1 | xn-1 ...
		m := p % (2 * n)
		if m < 0 {
			m += 2 * n
		}
		if m >= n {
			m = 2*n - 1 - m
		}
		return x[m], nil
	case ModePeriodic:
		m := p % n
		if m < 0 {
			m += n
		}
		return x[m], nil
	default:
		return 0, fmt.Errorf("wavelet: unknown extension mode %q", mode)
	}
}

// Dwt computes a single-level discrete wavelet transform, returning the
// approximation and detail coefficients. Both have length
// (len(x) + len(filter) - 1) / 2.
func Dwt(x []float64, w *Wavelet, mode Mode) (cA, cD []float64, err error) {
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("wavelet: empty signal")
	}
	if !mode.valid() {
		return nil, nil, fmt.Errorf("wavelet: unknown extension mode %q", mode)
	}

	cA, err = analyze(x, w.DecLo, mode)
	if err != nil {
		return nil, nil, err
	}
	cD, err = analyze(x, w.DecHi, mode)
	if err != nil {
		return nil, nil, err
	}
	return cA, cD, nil
}

// analyze convolves the extended signal with an analysis filter and keeps
// every second sample.
func analyze(x, f []float64, mode Mode) ([]float64, error) {
	fl := len(f)
	out := make([]float64, (len(x)+fl-1)/2)
	for i := range out {
		var s float64
		for k := 0; k < fl; k++ {
			v, err := sampleAt(x, 2*i+1-k, mode)
			if err != nil {
				return nil, err
			}
			s += f[k] * v
		}
		out[i] = s
	}
	return out, nil
}

// Idwt inverts a single-level transform. The output has length
// 2*len(cA) - len(filter) + 2 and may be longer than the signal the
// coefficients came from.
func Idwt(cA, cD []float64, w *Wavelet, mode Mode) ([]float64, error) {
	if len(cA) != len(cD) {
		return nil, fmt.Errorf("wavelet: coefficient lengths %d and %d do not match", len(cA), len(cD))
	}
	if !mode.valid() {
		return nil, fmt.Errorf("wavelet: unknown extension mode %q", mode)
	}

	fl := len(w.RecLo)
	outLen := 2*len(cA) - fl + 2
	if outLen < 1 {
		return nil, fmt.Errorf("wavelet: %d coefficients are too few to invert a length-%d filter bank", len(cA), fl)
	}

	out := make([]float64, outLen)
	for m := range out {
		// Index into the full synthesis convolution, past the boundary trim.
		mm := m + fl - 2
		var s float64
		for i := range cA {
			k := mm - 2*i
			if k >= 0 && k < fl {
				s += cA[i]*w.RecLo[k] + cD[i]*w.RecHi[k]
			}
		}
		out[m] = s
	}
	return out, nil
}

// MaxLevel returns the maximum useful decomposition depth for a signal of n
// samples and the given filter length.
func MaxLevel(n, filterLen int) int {
	if filterLen < 2 || n < filterLen-1 {
		return 0
	}
	return int(math.Log2(float64(n) / float64(filterLen-1)))
}

// Wavedec decomposes the signal to its maximum depth L, returning L+1
// coefficient sets ordered [cA_L, cD_L, ..., cD_1]. The input is not
// modified.
func Wavedec(x []float64, w *Wavelet, mode Mode) ([][]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("wavelet: empty signal")
	}
	if !mode.valid() {
		return nil, fmt.Errorf("wavelet: unknown extension mode %q", mode)
	}

	level := MaxLevel(len(x), len(w.DecLo))
	details := make([][]float64, 0, level)

	a := make([]float64, len(x))
	copy(a, x)
	for l := 0; l < level; l++ {
		cA, cD, err := Dwt(a, w, mode)
		if err != nil {
			return nil, err
		}
		details = append(details, cD)
		a = cA
	}

	coeffs := make([][]float64, 0, level+1)
	coeffs = append(coeffs, a)
	for i := len(details) - 1; i >= 0; i-- {
		coeffs = append(coeffs, details[i])
	}
	return coeffs, nil
}

// Waverec reconstructs a signal from Wavedec coefficients. The result may be
// longer than the originally decomposed signal due to boundary effects.
func Waverec(coeffs [][]float64, w *Wavelet, mode Mode) ([]float64, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("wavelet: no coefficients")
	}

	a := make([]float64, len(coeffs[0]))
	copy(a, coeffs[0])
	for _, d := range coeffs[1:] {
		// A dangling approximation sample from an odd-length level is
		// dropped, as the matching detail band never saw it.
		if len(a) == len(d)+1 {
			a = a[:len(a)-1]
		}
		var err error
		a, err = Idwt(a, d, w, mode)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}
