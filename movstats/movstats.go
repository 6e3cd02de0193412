// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package movstats computes moving statistics over a fixed sample window.
package movstats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats computes the moving mean and sample standard deviation of x over a
// window of the given length, in O(n) via cumulative sums. The outputs match
// the input length: values are centered on the window, and the edges where
// the window does not fit carry the nearest full-window value.
func Stats(x []float64, window int) (mean, std []float64, err error) {
	n := len(x)
	if window < 1 {
		return nil, nil, fmt.Errorf("movstats: window must be >= 1, got %d", window)
	}
	if window > n {
		return nil, nil, fmt.Errorf("movstats: window of %d samples exceeds the %d sample signal", window, n)
	}

	squares := make([]float64, n)
	for i, v := range x {
		squares[i] = v * v
	}
	cum := floats.CumSum(make([]float64, n), x)
	cum2 := floats.CumSum(make([]float64, n), squares)

	windowSum := func(c []float64, i int) float64 {
		s := c[i+window-1]
		if i > 0 {
			s -= c[i-1]
		}
		return s
	}

	w := float64(window)
	valid := n - window + 1
	vmean := make([]float64, valid)
	vstd := make([]float64, valid)
	for i := 0; i < valid; i++ {
		s := windowSum(cum, i)
		vmean[i] = s / w
		if window > 1 {
			// Sample variance, guarding against cancellation going negative.
			v := (windowSum(cum2, i) - s*s/w) / (w - 1)
			if v > 0 {
				vstd[i] = math.Sqrt(v)
			}
		}
	}

	mean = make([]float64, n)
	std = make([]float64, n)
	pad := window / 2
	for i := 0; i < n; i++ {
		j := i - pad
		if j < 0 {
			j = 0
		} else if j >= valid {
			j = valid - 1
		}
		mean[i] = vmean[j]
		std[i] = vstd[j]
	}
	return mean, std, nil
}
