// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package sit2stand

import "errors"

var (
	// ErrConfiguration indicates an invalid or contradictory configuration
	// value supplied at construction or call time.
	ErrConfiguration = errors.New("sit2stand: invalid configuration")

	// ErrInvalidInput indicates malformed or degenerate input data, such as
	// an empty signal or mismatched sequence lengths.
	ErrInvalidInput = errors.New("sit2stand: invalid input")
)
