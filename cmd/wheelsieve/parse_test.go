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
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoundDecimal(t *testing.T) {
	cases := map[string]uint64{
		"1":                    1,
		"1000":                 1000,
		"29505444490":          29505444490,
		"18446744073709551609": 18446744073709551609,
	}
	for in, want := range cases {
		got, err := parseBound(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseBoundScientific(t *testing.T) {
	cases := map[string]uint64{
		"1e+10":       10_000_000_000,
		"1e10":        10_000_000_000,
		"1.1e+10":     11_000_000_000,
		"1.00001e+16": 10_000_100_000_000_000,
		"2.5E3":       2500,
		"1.8446744073709551609e19": 18446744073709551609,
	}
	for in, want := range cases {
		got, err := parseBound(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseBoundRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"abc",
		"-5",
		"1.5",       // fractional
		"1.23e1",    // still fractional after scaling
		"1e-3",      // negative exponent
		"1e",        // missing exponent
		"2e19",      // past 2^64-7
		"18446744073709551610", // 2^64-6
		"99999999999999999999999",
	} {
		_, err := parseBound(in)
		assert.Error(t, err, in)
	}
}

func TestParseWorkers(t *testing.T) {
	ncpu := runtime.NumCPU()

	n, err := parseWorkers("auto")
	require.NoError(t, err)
	assert.Equal(t, ncpu, n)

	n, err = parseWorkers("100%")
	require.NoError(t, err)
	assert.Equal(t, ncpu, n)

	n, err = parseWorkers("50%")
	require.NoError(t, err)
	assert.Equal(t, max(ncpu/2, 1), n)

	n, err = parseWorkers("1%")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)

	n, err = parseWorkers("4")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	for _, in := range []string{"", "0", "-2", "x", "%", "0%", "ten"} {
		_, err = parseWorkers(in)
		assert.Error(t, err, in)
	}
}
