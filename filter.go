// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package sit2stand preprocesses raw tri-axial accelerometer signals from a
// lumbar-mounted wearable for downstream sit-to-stand transition detection.
package sit2stand

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/OpenPSG/sit2stand/dsp"
	"github.com/OpenPSG/sit2stand/movstats"
	"github.com/OpenPSG/sit2stand/wavelet"
)

// AccFilter filters and reconstructs raw acceleration data. It is immutable
// after construction and safe for concurrent use on independent signals.
type AccFilter struct {
	cfg   FilterConfig
	recon reconstructor
}

// reconstructor turns the low-pass filtered magnitude into the reconstructed
// magnitude. clamped reports whether an out-of-range reconstruction level
// was repaired.
type reconstructor interface {
	reconstruct(filtered []float64, fs float64) (signal []float64, clamped bool, err error)
}

// NewAccFilter validates the reconstruction method and resolves it to a
// reconstruction strategy. All other configuration values are kept verbatim
// and validated on Apply.
func NewAccFilter(cfg FilterConfig) (*AccFilter, error) {
	f := &AccFilter{cfg: cfg}

	switch cfg.Method {
	case MovingAverage:
		f.recon = &movingAverageReconstructor{window: cfg.Window}
	case DiscreteWaveletTransform:
		f.recon = &dwtReconstructor{
			wavelet: cfg.Wavelet,
			mode:    cfg.ExtensionMode,
			level:   cfg.ReconstructionLevel,
		}
	default:
		return nil, fmt.Errorf("%w: unrecognized reconstruction method %q, options are %q or %q",
			ErrConfiguration, cfg.Method, MovingAverage, DiscreteWaveletTransform)
	}

	return f, nil
}

// Apply filters the (N, 3) acceleration signal sampled at fs Hz. It returns
// the low-pass filtered magnitude and the reconstructed magnitude, both of
// length N and index-aligned with the input.
func (f *AccFilter) Apply(accel [][3]float64, fs float64) (Result, error) {
	if len(accel) == 0 {
		return Result{}, fmt.Errorf("%w: empty acceleration signal", ErrInvalidInput)
	}
	if fs <= 0 || math.IsNaN(fs) || math.IsInf(fs, 0) {
		return Result{}, fmt.Errorf("%w: sampling rate must be positive and finite, got %g", ErrConfiguration, fs)
	}
	if f.cfg.LowpassOrder < 1 {
		return Result{}, fmt.Errorf("%w: low-pass filter order must be >= 1, got %d", ErrConfiguration, f.cfg.LowpassOrder)
	}
	if f.cfg.LowpassCutoff <= 0 || f.cfg.LowpassCutoff >= fs/2 {
		return Result{}, fmt.Errorf("%w: low-pass cutoff %g Hz must be in (0, %g) for a %g Hz sampling rate",
			ErrConfiguration, f.cfg.LowpassCutoff, fs/2, fs)
	}

	// Zero-phase filtering needs more than 3*order samples for the edge
	// extensions.
	if len(accel) <= 3*f.cfg.LowpassOrder {
		return Result{}, fmt.Errorf("%w: signal of %d samples is too short for order-%d zero-phase filtering",
			ErrInvalidInput, len(accel), f.cfg.LowpassOrder)
	}

	mag := magnitude(accel)

	b, a, err := dsp.Butterworth(f.cfg.LowpassOrder, 2*f.cfg.LowpassCutoff/fs)
	if err != nil {
		return Result{}, err
	}
	filtered, err := dsp.FiltFilt(b, a, mag)
	if err != nil {
		return Result{}, err
	}

	raw, clamped, err := f.recon.reconstruct(filtered, fs)
	if err != nil {
		return Result{}, err
	}

	// Reconcile reconstruction boundary effects with the filtered signal.
	if len(raw) > len(filtered) {
		raw = raw[:len(filtered)]
	}

	return Result{Filtered: filtered, Reconstructed: raw, LevelClamped: clamped}, nil
}

// magnitude computes the per-sample Euclidean norm of the 3-axis signal.
func magnitude(accel [][3]float64) []float64 {
	mag := make([]float64, len(accel))
	for i, v := range accel {
		mag[i] = math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	}
	return mag
}

type movingAverageReconstructor struct {
	window float64 // seconds
}

func (r *movingAverageReconstructor) reconstruct(filtered []float64, fs float64) ([]float64, bool, error) {
	n := int(math.Round(fs * r.window))
	if n < 1 {
		return nil, false, fmt.Errorf("%w: moving average window of %gs is under one sample at %g Hz",
			ErrConfiguration, r.window, fs)
	}
	if n >= len(filtered) {
		return nil, false, fmt.Errorf("%w: moving average window of %d samples does not fit a %d sample signal",
			ErrInvalidInput, n, len(filtered))
	}

	mean, _, err := movstats.Stats(filtered, n)
	if err != nil {
		return nil, false, err
	}
	return mean, false, nil
}

type dwtReconstructor struct {
	wavelet string
	mode    wavelet.Mode
	level   int
}

func (r *dwtReconstructor) reconstruct(filtered []float64, _ float64) ([]float64, bool, error) {
	w, err := wavelet.New(r.wavelet)
	if err != nil {
		return nil, false, err
	}

	coeffs, err := wavelet.Wavedec(filtered, w, r.mode)
	if err != nil {
		return nil, false, err
	}

	// Keep a single detail band, counted from the coarsest. An over-deep
	// level is clamped to the coarsest band rather than rejected.
	target := len(coeffs) - r.level
	clamped := false
	if target < 1 {
		slog.Warn("reconstruction level exceeds decomposition depth, using the coarsest detail band",
			"level", r.level, "depth", len(coeffs)-1)
		target = 1
		clamped = true
	}

	kept := make([][]float64, len(coeffs))
	kept[0] = coeffs[0] // the approximation band is always retained
	for i := 1; i < len(coeffs); i++ {
		if i == target {
			kept[i] = coeffs[i]
		} else {
			kept[i] = make([]float64, len(coeffs[i]))
		}
	}

	signal, err := wavelet.Waverec(kept, w, r.mode)
	if err != nil {
		return nil, false, err
	}
	return signal, clamped, nil
}
