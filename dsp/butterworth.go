// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package dsp provides low-pass IIR filter design and zero-phase filtering.
package dsp

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Butterworth designs a digital low-pass Butterworth filter of the given
// order via the bilinear transform. cutoff is the normalized cutoff
// frequency, where 1 is the Nyquist frequency. It returns the numerator b
// and denominator a of the transfer function, with a[0] == 1 and the gain at
// DC pinned to exactly one.
func Butterworth(order int, cutoff float64) (b, a []float64, err error) {
	if order < 1 {
		return nil, nil, fmt.Errorf("dsp: filter order must be >= 1, got %d", order)
	}
	if math.IsNaN(cutoff) || cutoff <= 0 || cutoff >= 1 {
		return nil, nil, fmt.Errorf("dsp: normalized cutoff must be in (0, 1), got %g", cutoff)
	}

	// Analog prototype poles, equally spaced on the unit circle in the left
	// half plane, scaled to the prewarped cutoff.
	warped := 4 * math.Tan(math.Pi*cutoff/2)
	gain := complex(math.Pow(warped, float64(order)), 0)

	const fs2 = 4.0 // 2x the bilinear sampling rate of 2 Hz
	zpoles := make([]complex128, order)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k-order+1) / float64(2*order)
		p := -cmplx.Exp(complex(0, theta)) * complex(warped, 0)
		zpoles[k] = (complex(fs2, 0) + p) / (complex(fs2, 0) - p)
		gain /= complex(fs2, 0) - p
	}

	// The low-pass transform places all zeros at z = -1.
	zzeros := make([]complex128, order)
	for k := range zzeros {
		zzeros[k] = -1
	}

	b = polyFromRoots(zzeros)
	for i := range b {
		b[i] *= real(gain)
	}
	a = polyFromRoots(zpoles)

	// Remove any residual numeric drift in the DC gain.
	var sumB, sumA float64
	for _, v := range b {
		sumB += v
	}
	for _, v := range a {
		sumA += v
	}
	scale := sumA / sumB
	for i := range b {
		b[i] *= scale
	}

	return b, a, nil
}

// polyFromRoots expands a monic polynomial from its roots. Complex roots are
// expected in conjugate pairs so the coefficients are real.
func polyFromRoots(roots []complex128) []float64 {
	coeffs := make([]complex128, 1, len(roots)+1)
	coeffs[0] = 1
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}

	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = real(c)
	}
	return out
}
