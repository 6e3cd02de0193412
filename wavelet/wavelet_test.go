// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package wavelet_test

import (
	"math"
	"testing"

	"github.com/OpenPSG/sit2stand/wavelet"
	"github.com/stretchr/testify/require"
)

func TestHaarDwt(t *testing.T) {
	w, err := wavelet.New("haar")
	require.NoError(t, err)

	cA, cD, err := wavelet.Dwt([]float64{1, 2, 3, 4}, w, wavelet.ModeZero)
	require.NoError(t, err)

	r2 := math.Sqrt2
	require.Len(t, cA, 2)
	require.InDelta(t, 3/r2, cA[0], 1e-12)
	require.InDelta(t, 7/r2, cA[1], 1e-12)
	require.InDelta(t, -1/r2, cD[0], 1e-12)
	require.InDelta(t, -1/r2, cD[1], 1e-12)
}

func TestHaarIdwtRoundTrip(t *testing.T) {
	w, err := wavelet.New("haar")
	require.NoError(t, err)

	x := []float64{1, 2, 3, 4}
	cA, cD, err := wavelet.Dwt(x, w, wavelet.ModeZero)
	require.NoError(t, err)

	y, err := wavelet.Idwt(cA, cD, w, wavelet.ModeZero)
	require.NoError(t, err)
	require.Len(t, y, 4)
	for i := range x {
		require.InDelta(t, x[i], y[i], 1e-12)
	}
}

func TestConstantExtension(t *testing.T) {
	w, err := wavelet.New("haar")
	require.NoError(t, err)

	// A constant signal under edge replication has all its energy in the
	// approximation band.
	cA, cD, err := wavelet.Dwt([]float64{5, 5, 5, 5}, w, wavelet.ModeConstant)
	require.NoError(t, err)
	for i := range cA {
		require.InDelta(t, 5*math.Sqrt2, cA[i], 1e-12)
		require.InDelta(t, 0, cD[i], 1e-12)
	}
}

func TestPerfectReconstruction(t *testing.T) {
	x := make([]float64, 64)
	for i := range x {
		x[i] = math.Sin(0.3*float64(i)) + 0.1*float64(i)
	}

	for _, name := range []string{"haar", "db2", "db3", "db4", "sym4"} {
		for _, mode := range []wavelet.Mode{wavelet.ModeZero, wavelet.ModeConstant, wavelet.ModeSymmetric, wavelet.ModePeriodic} {
			w, err := wavelet.New(name)
			require.NoError(t, err)

			coeffs, err := wavelet.Wavedec(x, w, mode)
			require.NoError(t, err)

			y, err := wavelet.Waverec(coeffs, w, mode)
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(y), len(x))
			for i := range x {
				require.InDeltaf(t, x[i], y[i], 1e-6, "wavelet %s mode %s index %d", name, mode, i)
			}
		}
	}
}

func TestWavedecDepth(t *testing.T) {
	w, err := wavelet.New("db4")
	require.NoError(t, err)

	x := make([]float64, 64)
	coeffs, err := wavelet.Wavedec(x, w, wavelet.ModeConstant)
	require.NoError(t, err)

	// floor(log2(64/7)) levels of detail plus the approximation band.
	require.Len(t, coeffs, 4)
}

func TestMaxLevel(t *testing.T) {
	require.Equal(t, 3, wavelet.MaxLevel(64, 8))
	require.Equal(t, 9, wavelet.MaxLevel(1000, 2))
	require.Equal(t, 0, wavelet.MaxLevel(4, 8))
}

func TestUnknownWavelet(t *testing.T) {
	_, err := wavelet.New("bogus")
	require.Error(t, err)
}

func TestUnknownMode(t *testing.T) {
	w, err := wavelet.New("haar")
	require.NoError(t, err)

	_, err = wavelet.Wavedec([]float64{1, 2, 3, 4}, w, "bogus")
	require.Error(t, err)
}

func TestDb1Alias(t *testing.T) {
	w, err := wavelet.New("db1")
	require.NoError(t, err)
	require.InDelta(t, 1/math.Sqrt2, w.RecLo[0], 1e-12)
}
