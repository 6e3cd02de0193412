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
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// TimeSource is a sequence of raw timestamps that can be resolved into
// absolute time points.
type TimeSource interface {
	times(unit TimeUnit, parse *ParseConfig) ([]time.Time, error)
}

// EpochTimes are numeric epoch offsets in a configured time unit.
type EpochTimes []float64

// StringTimes are textual timestamps parsed with a reference layout.
type StringTimes []string

// Normalize parses raw timestamps into a canonical time base, computes the
// mean sampling interval in seconds, and optionally restricts the timestamps
// and the co-indexed acceleration to a daily time-of-day window. The sampling
// interval is always computed on the full, unwindowed sequence.
func Normalize(times TimeSource, accel [][3]float64, opts NormalizeOptions) (*NormalizeResult, error) {
	if opts.Unit == "" && opts.Parse == nil {
		return nil, fmt.Errorf("%w: either a time unit or a parse config must be provided", ErrConfiguration)
	}

	unit := opts.Unit
	if unit == "" {
		unit = opts.Parse.Unit
	}

	ts, err := times.times(unit, opts.Parse)
	if err != nil {
		return nil, err
	}
	if len(ts) < 2 {
		return nil, fmt.Errorf("%w: need at least two timestamps to derive a sampling interval, got %d",
			ErrInvalidInput, len(ts))
	}

	diffs := make([]float64, len(ts)-1)
	for i := range diffs {
		diffs[i] = ts[i+1].Sub(ts[i]).Seconds()
	}
	interval := stat.Mean(diffs, nil)

	if !opts.Window {
		return &NormalizeResult{Timestamps: ts, Interval: interval}, nil
	}

	if len(accel) != len(ts) {
		return nil, fmt.Errorf("%w: acceleration length %d does not match %d timestamps",
			ErrInvalidInput, len(accel), len(ts))
	}

	hours := opts.Hours
	if hours == [2]string{} {
		hours = DefaultHours
	}
	idx, err := indicesBetweenTime(ts, hours[0], hours[1])
	if err != nil {
		return nil, err
	}

	wts := make([]time.Time, len(idx))
	wacc := make([][3]float64, len(idx))
	for i, j := range idx {
		wts[i] = ts[j]
		wacc[i] = accel[j]
	}

	return &NormalizeResult{Timestamps: wts, Interval: interval, Accel: wacc}, nil
}

func (e EpochTimes) times(unit TimeUnit, _ *ParseConfig) ([]time.Time, error) {
	var perSecond float64
	switch unit {
	case UnitSeconds:
		perSecond = 1
	case UnitMilliseconds:
		perSecond = 1e3
	case UnitMicroseconds:
		perSecond = 1e6
	case UnitNanoseconds:
		perSecond = 1e9
	case "":
		return nil, fmt.Errorf("%w: numeric timestamps require a time unit", ErrConfiguration)
	default:
		return nil, fmt.Errorf("%w: unrecognized time unit %q", ErrConfiguration, unit)
	}

	ts := make([]time.Time, len(e))
	for i, v := range e {
		secs := v / perSecond
		whole := math.Floor(secs)
		ts[i] = time.Unix(int64(whole), int64(math.Round((secs-whole)*1e9))).UTC()
	}
	return ts, nil
}

func (s StringTimes) times(_ TimeUnit, parse *ParseConfig) ([]time.Time, error) {
	if parse == nil || parse.Layout == "" {
		return nil, fmt.Errorf("%w: textual timestamps require a parse config with a layout", ErrConfiguration)
	}
	loc := parse.Location
	if loc == nil {
		loc = time.UTC
	}

	ts := make([]time.Time, len(s))
	for i, raw := range s {
		t, err := time.ParseInLocation(parse.Layout, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("error parsing timestamp %d: %w", i, err)
		}
		ts[i] = t
	}
	return ts, nil
}

// indicesBetweenTime returns the indices whose clock time-of-day falls in
// [start, end), evaluated per day regardless of date. A start at or past the
// end wraps the window across midnight.
func indicesBetweenTime(ts []time.Time, start, end string) ([]int, error) {
	startNs, err := clockNanos(start)
	if err != nil {
		return nil, err
	}
	endNs, err := clockNanos(end)
	if err != nil {
		return nil, err
	}

	var idx []int
	for i, t := range ts {
		h, m, s := t.Clock()
		tod := (int64(h)*3600+int64(m)*60+int64(s))*int64(time.Second) + int64(t.Nanosecond())

		var in bool
		if startNs < endNs {
			in = tod >= startNs && tod < endNs
		} else {
			in = tod >= startNs || tod < endNs
		}
		if in {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

func clockNanos(hhmm string) (int64, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("%w: windowing bound %q is not in HH:MM format", ErrConfiguration, hhmm)
	}
	return (int64(t.Hour())*3600 + int64(t.Minute())*60) * int64(time.Second), nil
}
