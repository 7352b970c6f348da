/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"math/bits"
	"runtime"
	"strconv"
	"strings"

	"github.com/wheelsieve/wheelsieve-go/internal"
	"github.com/wheelsieve/wheelsieve-go/sieve"
)

// parseBound reads a sieve bound as plain decimal or scientific
// notation (1e+10, 1.1e+10). Scientific input is decoded exactly in
// integer arithmetic; a float round trip would lose low digits past
// 2^53, and bounds near 2^64 are legitimate input here.
func parseBound(s string) (uint64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	mant := s
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant = s[:i]
		es := strings.TrimPrefix(s[i+1:], "+")
		e, err := strconv.Atoi(es)
		if err != nil || e < 0 {
			return 0, fmt.Errorf("invalid exponent in %q", s)
		}
		exp = e
	}

	if i := strings.IndexByte(mant, '.'); i >= 0 {
		frac := len(mant) - i - 1
		if frac > exp {
			return 0, fmt.Errorf("%q is not an integer", s)
		}
		exp -= frac
		mant = mant[:i] + mant[i+1:]
	}

	if mant == "" {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	v, err := strconv.ParseUint(mant, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	for ; exp > 0; exp-- {
		hi, lo := bits.Mul64(v, 10)
		if hi != 0 {
			return 0, fmt.Errorf("%q exceeds %d (2^64-7)", s, sieve.MaxLimit)
		}
		v = lo
	}
	if v > sieve.MaxLimit {
		return 0, fmt.Errorf("%q exceeds %d (2^64-7)", s, sieve.MaxLimit)
	}
	return v, nil
}

// parseWorkers reads the worker-count flag: a positive integer, a
// percentage of the logical CPUs, or "auto" (all of them).
func parseWorkers(s string) (int, error) {
	ncpu := runtime.NumCPU()
	switch {
	case s == "auto":
		return ncpu, nil
	case strings.HasSuffix(s, "%"):
		pct, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
		if err != nil || pct < 1 {
			return 0, fmt.Errorf("invalid percentage %q", s)
		}
		return internal.Max(ncpu*pct/100, 1), nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("invalid worker count %q", s)
		}
		return n, nil
	}
}
