// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package wavelet provides discrete wavelet decomposition and reconstruction
// for a set of orthogonal wavelet families.
package wavelet

import (
	"fmt"
	"math"
)

// Wavelet holds the analysis and synthesis filter banks of an orthogonal
// wavelet.
type Wavelet struct {
	Name                       string
	DecLo, DecHi, RecLo, RecHi []float64
}

var root3 = math.Sqrt(3)

// synthesisLowpass holds the reconstruction low-pass filter of each
// supported family; the remaining three filters follow from orthogonality.
var synthesisLowpass = map[string][]float64{
	"haar": {1 / math.Sqrt2, 1 / math.Sqrt2},
	"db2": {
		(1 + root3) / (4 * math.Sqrt2),
		(3 + root3) / (4 * math.Sqrt2),
		(3 - root3) / (4 * math.Sqrt2),
		(1 - root3) / (4 * math.Sqrt2),
	},
	"db3": {
		0.33267055295095688,
		0.80689150931333875,
		0.45987750211933132,
		-0.13501102001039084,
		-0.08544127388224149,
		0.03522629188210562,
	},
	"db4": {
		0.23037781330885523,
		0.71484657055254153,
		0.63088076792959036,
		-0.02798376941698385,
		-0.18703481171888114,
		0.03084138183598697,
		0.03288301166698295,
		-0.01059740178499728,
	},
	"sym4": {
		0.03222310060404270,
		-0.01260396726203783,
		-0.09921954357684722,
		0.29785779560527736,
		0.80373875180591614,
		0.49761866763201545,
		-0.02963552764599851,
		-0.07576571478927333,
	},
}

// New returns the named wavelet. Supported names are haar (alias db1), db2,
// db3, db4, and sym4.
func New(name string) (*Wavelet, error) {
	key := name
	if key == "db1" {
		key = "haar"
	}
	recLo, ok := synthesisLowpass[key]
	if !ok {
		return nil, fmt.Errorf("wavelet: unknown wavelet %q", name)
	}

	fl := len(recLo)

	// Quadrature mirror of the low-pass filter.
	recHi := make([]float64, fl)
	for k := range recHi {
		h := recLo[fl-1-k]
		if k%2 == 1 {
			h = -h
		}
		recHi[k] = h
	}

	decLo := make([]float64, fl)
	decHi := make([]float64, fl)
	for k := 0; k < fl; k++ {
		decLo[k] = recLo[fl-1-k]
		decHi[k] = recHi[fl-1-k]
	}

	return &Wavelet{Name: name, DecLo: decLo, DecHi: decHi, RecLo: recLo, RecHi: recHi}, nil
}
