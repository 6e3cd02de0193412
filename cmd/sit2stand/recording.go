// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// recording is a raw accelerometer recording: one timestamp and one 3-axis
// sample per row.
type recording struct {
	Times []string
	Accel [][3]float64
}

// readRecording reads a CSV recording with time,x,y,z rows. A non-numeric
// first row is treated as a header and skipped.
func readRecording(path string) (*recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening recording: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4

	rec := &recording{}
	for row := 0; ; row++ {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading recording: %w", err)
		}

		var sample [3]float64
		var bad bool
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				bad = true
				break
			}
			sample[i] = v
		}
		if bad {
			if row == 0 {
				continue // header
			}
			return nil, fmt.Errorf("error parsing sample on row %d", row+1)
		}

		rec.Times = append(rec.Times, fields[0])
		rec.Accel = append(rec.Accel, sample)
	}

	if len(rec.Times) == 0 {
		return nil, fmt.Errorf("recording %s contains no samples", path)
	}
	return rec, nil
}

// writeRecording writes the processed signals as time,filtered,reconstructed
// CSV rows.
func writeRecording(path string, ts []time.Time, filtered, reconstructed []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "filtered", "reconstructed"}); err != nil {
		return err
	}
	for i := range ts {
		row := []string{
			ts[i].Format(time.RFC3339Nano),
			strconv.FormatFloat(filtered[i], 'g', -1, 64),
			strconv.FormatFloat(reconstructed[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}
