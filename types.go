// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package sit2stand

import (
	"time"

	"github.com/OpenPSG/sit2stand/wavelet"
)

// ReconstructionMethod selects how the reconstructed acceleration magnitude
// is computed from the low-pass filtered signal.
type ReconstructionMethod string

const (
	// MovingAverage reconstructs the signal as a moving average over a
	// fixed-duration window.
	MovingAverage ReconstructionMethod = "moving average"

	// DiscreteWaveletTransform reconstructs the signal from a single detail
	// band of a multi-level discrete wavelet decomposition.
	DiscreteWaveletTransform ReconstructionMethod = "dwt"
)

// FilterConfig holds the parameters for filtering and reconstructing raw
// acceleration data. The zero value is not usable; start from
// DefaultFilterConfig.
type FilterConfig struct {
	Method              ReconstructionMethod // Reconstruction method
	LowpassOrder        int                  // Low-pass filter order
	LowpassCutoff       float64              // Low-pass cutoff frequency in Hz
	Window              float64              // Moving average window in seconds (moving average only)
	Wavelet             string               // Discrete wavelet name (dwt only)
	ExtensionMode       wavelet.Mode         // Signal extension mode (dwt only)
	ReconstructionLevel int                  // Detail level retained, counted from the coarsest (dwt only)
}

// DefaultFilterConfig returns the reference filter configuration.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Method:              MovingAverage,
		LowpassOrder:        4,
		LowpassCutoff:       5, // Hz
		Window:              0.25,
		Wavelet:             "db4",
		ExtensionMode:       wavelet.ModeConstant,
		ReconstructionLevel: 1,
	}
}

// Result holds the index-aligned output signals of AccFilter.Apply.
type Result struct {
	Filtered      []float64 // Low-pass filtered acceleration magnitude
	Reconstructed []float64 // Reconstructed acceleration magnitude
	LevelClamped  bool      // Whether the DWT reconstruction level was clamped to the decomposition depth
}

// TimeUnit is the unit of numeric epoch timestamps.
type TimeUnit string

const (
	UnitSeconds      TimeUnit = "s"
	UnitMilliseconds TimeUnit = "ms"
	UnitMicroseconds TimeUnit = "us"
	UnitNanoseconds  TimeUnit = "ns"
)

// ParseConfig is the generic timestamp parsing configuration.
type ParseConfig struct {
	Unit     TimeUnit       // Epoch unit for numeric timestamps
	Layout   string         // Reference layout for textual timestamps
	Location *time.Location // Location for layouts without a zone, UTC if nil
}

// NormalizeOptions control timestamp normalization and windowing.
type NormalizeOptions struct {
	Unit   TimeUnit     // Explicit epoch unit, overrides the unit in Parse
	Parse  *ParseConfig // Generic parsing configuration
	Window bool         // Restrict samples to the daily Hours window
	Hours  [2]string    // Daily window as "HH:MM", start inclusive, end exclusive
}

// DefaultHours is the daily time-of-day window used when none is supplied.
var DefaultHours = [2]string{"08:00", "20:00"}

// NormalizeResult holds the canonical time base produced by Normalize.
type NormalizeResult struct {
	Timestamps []time.Time  // Parsed timestamps, windowed if requested
	Interval   float64      // Mean sampling interval in seconds, from the full sequence
	Accel      [][3]float64 // Windowed acceleration, nil unless windowing was requested
}
