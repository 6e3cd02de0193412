// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package dsp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FiltFilt applies the IIR filter described by b and a forward and then
// backward over x, so the net phase shift is zero. Edge transients are
// suppressed by odd extension of the signal and steady-state initialization
// of the filter, after Gustafsson (1996); the same technique as the
// fixed-order zero-phase batch filter this generalizes.
func FiltFilt(b, a []float64, x []float64) ([]float64, error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, fmt.Errorf("dsp: empty filter coefficients")
	}
	if a[0] == 0 {
		return nil, fmt.Errorf("dsp: leading denominator coefficient must be nonzero")
	}

	// Normalize to a common tap count with a[0] == 1.
	ntaps := max(len(a), len(b))
	if ntaps < 2 {
		return nil, fmt.Errorf("dsp: filter must have at least two taps")
	}
	bn := make([]float64, ntaps)
	an := make([]float64, ntaps)
	for i := range b {
		bn[i] = b[i] / a[0]
	}
	for i := range a {
		an[i] = a[i] / a[0]
	}

	edge := 3 * (ntaps - 1)
	if len(x) <= edge {
		return nil, fmt.Errorf("dsp: signal of %d samples is too short for zero-phase filtering, need more than %d", len(x), edge)
	}

	zi, err := steadyState(bn, an)
	if err != nil {
		return nil, err
	}

	// Odd extension about the first and last samples.
	n := len(x)
	ext := make([]float64, n+2*edge)
	for i := 0; i < edge; i++ {
		ext[i] = 2*x[0] - x[edge-i]
		ext[edge+n+i] = 2*x[n-1] - x[n-2-i]
	}
	copy(ext[edge:], x)

	fwd := lfilter(bn, an, ext, scaled(zi, ext[0]))

	reverse(fwd)
	bwd := lfilter(bn, an, fwd, scaled(zi, fwd[0]))
	reverse(bwd)

	out := make([]float64, n)
	copy(out, bwd[edge:edge+n])
	return out, nil
}

// lfilter runs the filter over x in Direct-Form II transposed with the
// initial state zi. b and a must share a length of at least two, with
// a[0] == 1.
func lfilter(b, a, x, zi []float64) []float64 {
	ntaps := len(b)
	z := make([]float64, ntaps-1)
	copy(z, zi)

	y := make([]float64, len(x))
	for i, xv := range x {
		yv := b[0]*xv + z[0]
		for j := 1; j < ntaps-1; j++ {
			z[j-1] = b[j]*xv + z[j] - a[j]*yv
		}
		z[ntaps-2] = b[ntaps-1]*xv - a[ntaps-1]*yv
		y[i] = yv
	}
	return y
}

// steadyState computes the filter state that makes the step response
// immediately settled, by solving (I - A^T) zi = B for the companion-form
// state matrix of the denominator.
func steadyState(b, a []float64) ([]float64, error) {
	m := len(a) - 1

	sys := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			// companion(a) has -a[1:] along its first row and ones on the
			// subdiagonal; subtract its transpose from the identity.
			var c float64
			if j == 0 {
				c = -a[i+1]
			} else if i == j-1 {
				c = 1
			}
			v := -c
			if i == j {
				v++
			}
			sys.Set(i, j, v)
		}
	}

	rhs := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		rhs.SetVec(i, b[i+1]-a[i+1]*b[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(sys, rhs); err != nil {
		return nil, fmt.Errorf("error computing steady-state filter conditions: %w", err)
	}

	out := make([]float64, m)
	for i := 0; i < m; i++ {
		out[i] = zi.AtVec(i)
	}
	return out, nil
}

func scaled(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * s
	}
	return out
}

func reverse(v []float64) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
