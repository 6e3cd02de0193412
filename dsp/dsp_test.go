// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package dsp_test

import (
	"math"
	"testing"

	"github.com/OpenPSG/sit2stand/dsp"
	"github.com/stretchr/testify/require"
)

func TestButterworthKnownCoefficients(t *testing.T) {
	// Second order with the cutoff halfway to Nyquist is a textbook design.
	b, a, err := dsp.Butterworth(2, 0.5)
	require.NoError(t, err)

	wantB := []float64{0.2928932188, 0.5857864376, 0.2928932188}
	wantA := []float64{1, 0, 0.1715728753}
	require.Len(t, b, 3)
	require.Len(t, a, 3)
	for i := range wantB {
		require.InDelta(t, wantB[i], b[i], 1e-6)
		require.InDelta(t, wantA[i], a[i], 1e-6)
	}
}

func TestButterworthUnitDCGain(t *testing.T) {
	for order := 1; order <= 6; order++ {
		b, a, err := dsp.Butterworth(order, 0.1)
		require.NoError(t, err)

		var sumB, sumA float64
		for _, v := range b {
			sumB += v
		}
		for _, v := range a {
			sumA += v
		}
		require.InDelta(t, 1.0, sumB/sumA, 1e-12)
	}
}

func TestButterworthInvalidParameters(t *testing.T) {
	_, _, err := dsp.Butterworth(0, 0.5)
	require.Error(t, err)

	_, _, err = dsp.Butterworth(4, 0)
	require.Error(t, err)

	_, _, err = dsp.Butterworth(4, 1)
	require.Error(t, err)
}

func TestFiltFiltConstantSignal(t *testing.T) {
	b, a, err := dsp.Butterworth(4, 0.1)
	require.NoError(t, err)

	x := make([]float64, 50)
	for i := range x {
		x[i] = 3.7
	}

	y, err := dsp.FiltFilt(b, a, x)
	require.NoError(t, err)
	require.Len(t, y, len(x))
	for i := range y {
		require.InDelta(t, 3.7, y[i], 1e-9)
	}
}

func TestFiltFiltAttenuatesNyquist(t *testing.T) {
	b, a, err := dsp.Butterworth(4, 0.1)
	require.NoError(t, err)

	// A fully alternating signal sits at the Nyquist frequency, where the
	// low-pass gain is zero.
	x := make([]float64, 100)
	for i := range x {
		x[i] = math.Pow(-1, float64(i))
	}

	y, err := dsp.FiltFilt(b, a, x)
	require.NoError(t, err)
	for i := 40; i < 60; i++ {
		require.InDelta(t, 0, y[i], 1e-2)
	}
}

func TestFiltFiltShortSignal(t *testing.T) {
	b, a, err := dsp.Butterworth(4, 0.1)
	require.NoError(t, err)

	_, err = dsp.FiltFilt(b, a, make([]float64, 12))
	require.Error(t, err)
}
