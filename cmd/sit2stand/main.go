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
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/OpenPSG/sit2stand"
	"github.com/OpenPSG/sit2stand/wavelet"
	"gopkg.in/yaml.v3"
)

// filterFile is the YAML filter configuration accepted by -c.
type filterFile struct {
	Method              string  `yaml:"method"`
	LowpassOrder        int     `yaml:"lowpass_order"`
	LowpassCutoff       float64 `yaml:"lowpass_cutoff"`
	Window              float64 `yaml:"window"`
	Wavelet             string  `yaml:"wavelet"`
	ExtensionMode       string  `yaml:"extension_mode"`
	ReconstructionLevel int     `yaml:"reconstruction_level"`
}

func main() {
	var (
		inputFile  = flag.String("i", "", "Input CSV recording with time,x,y,z rows")
		outputFile = flag.String("o", "", "Output CSV file (default: <input>_processed.csv)")
		configFile = flag.String("c", "", "YAML filter configuration file")
		unit       = flag.String("unit", "s", "Epoch time unit for numeric timestamps (s, ms, us, ns)")
		layout     = flag.String("layout", "", "Go time layout; when set, timestamps are parsed as text")
		window     = flag.Bool("window", false, "Restrict processing to a daily time window")
		hours      = flag.String("hours", "08:00-20:00", "Daily window as HH:MM-HH:MM")
	)

	flag.Usage = func() {
		fmt.Printf("sit2stand - preprocess lumbar accelerometer recordings\n\n")
		fmt.Printf("usage: sit2stand -i /path/to/recording.csv\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  sit2stand -i recording.csv\n")
		fmt.Printf("  sit2stand -i recording.csv -unit ms -window -hours 08:00-20:00\n")
		fmt.Printf("  sit2stand -i recording.csv -c filter.yaml\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *outputFile == "" {
		ext := filepath.Ext(*inputFile)
		*outputFile = strings.TrimSuffix(*inputFile, ext) + "_processed.csv"
	}

	cfg, err := loadFilterConfig(*configFile)
	if err != nil {
		fatal(err)
	}

	rec, err := readRecording(*inputFile)
	if err != nil {
		fatal(err)
	}

	times, opts, err := normalizeArgs(rec, *unit, *layout, *window, *hours)
	if err != nil {
		fatal(err)
	}

	res, err := sit2stand.Normalize(times, rec.Accel, opts)
	if err != nil {
		fatal(err)
	}

	accel := rec.Accel
	if opts.Window {
		accel = res.Accel
	}
	fs := 1 / res.Interval

	filter, err := sit2stand.NewAccFilter(cfg)
	if err != nil {
		fatal(err)
	}
	out, err := filter.Apply(accel, fs)
	if err != nil {
		fatal(err)
	}

	if err := writeRecording(*outputFile, res.Timestamps, out.Filtered, out.Reconstructed); err != nil {
		fatal(err)
	}

	fmt.Printf("processed %d of %d samples at %.2f Hz -> %s\n",
		len(out.Filtered), len(rec.Times), fs, *outputFile)
}

// normalizeArgs assembles the timestamp source and normalization options
// from the command line.
func normalizeArgs(rec *recording, unit, layout string, window bool, hours string) (sit2stand.TimeSource, sit2stand.NormalizeOptions, error) {
	opts := sit2stand.NormalizeOptions{Window: window}

	if window {
		bounds := strings.SplitN(hours, "-", 2)
		if len(bounds) != 2 {
			return nil, opts, fmt.Errorf("hours must be HH:MM-HH:MM, got %q", hours)
		}
		opts.Hours = [2]string{bounds[0], bounds[1]}
	}

	if layout != "" {
		opts.Parse = &sit2stand.ParseConfig{Layout: layout}
		return sit2stand.StringTimes(rec.Times), opts, nil
	}

	opts.Unit = sit2stand.TimeUnit(unit)
	epochs := make(sit2stand.EpochTimes, len(rec.Times))
	for i, raw := range rec.Times {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, opts, fmt.Errorf("error parsing timestamp on row %d: %w", i+1, err)
		}
		epochs[i] = v
	}
	return epochs, opts, nil
}

// loadFilterConfig overlays a YAML configuration file, if any, on the
// reference defaults.
func loadFilterConfig(path string) (sit2stand.FilterConfig, error) {
	cfg := sit2stand.DefaultFilterConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config: %w", err)
	}

	var file filterFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return cfg, fmt.Errorf("error parsing config: %w", err)
	}

	if file.Method != "" {
		cfg.Method = sit2stand.ReconstructionMethod(file.Method)
	}
	if file.LowpassOrder != 0 {
		cfg.LowpassOrder = file.LowpassOrder
	}
	if file.LowpassCutoff != 0 {
		cfg.LowpassCutoff = file.LowpassCutoff
	}
	if file.Window != 0 {
		cfg.Window = file.Window
	}
	if file.Wavelet != "" {
		cfg.Wavelet = file.Wavelet
	}
	if file.ExtensionMode != "" {
		cfg.ExtensionMode = wavelet.Mode(file.ExtensionMode)
	}
	if file.ReconstructionLevel != 0 {
		cfg.ReconstructionLevel = file.ReconstructionLevel
	}
	return cfg, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "sit2stand: %v\n", err)
	os.Exit(1)
}
