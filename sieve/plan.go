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

// Package sieve counts, sums, and enumerates the primes in an inclusive
// 64-bit interval with a segmented, wheel-factored bit sieve.
//
// The algorithm is Xuedong Luo's Algorithm 3 ("A practical sieve
// algorithm for finding prime numbers", CACM 32(3), 1989) in the
// segmented, pre-sieved form: only integers coprime to 6 are
// represented, the multiples of {5, 7, 11, 13, 17} (and 19 for large
// limits) are cleared once into a reusable template, and each segment
// resumes sieving from the next prime up.
package sieve

import (
	"errors"
	"fmt"

	"github.com/wheelsieve/wheelsieve-go/internal"
)

const (
	// MaxLimit is the largest supported upper bound, 2^64 - 7. The
	// wheel algebra computes candidate values up to six past the
	// limit, so the last six integers below 2^64 are out of reach.
	MaxLimit uint64 = 18446744073709551609

	// MaxSumLimit is the largest upper bound for which the sum of all
	// primes in [1, limit] still fits in 64 bits.
	MaxSumLimit uint64 = 29505444490

	// smallCycle is 2*3*5*7*11*13*17, the wheel period when the
	// template pre-sieves through 17. largeCycle multiplies in 19.
	smallCycle uint64 = 510510
	largeCycle uint64 = smallCycle * 19

	// largeFrom is the limit, 10^12, at and past which segments grow
	// to the larger wheel period and the template pre-sieves 19 too.
	largeFrom uint64 = 1_000_000_000_000
)

// Plan fixes the geometry of a sieving run: the requested interval, the
// adjusted floor, the segment width, and the chunk count. A Plan is
// immutable and shared read-only by all workers.
type Plan struct {
	From    uint64 // requested floor
	Limit   uint64 // requested ceiling, inclusive
	FromAdj uint64 // floor aligned down to a wheel boundary
	Step    uint64 // segment width in integers
	Chunks  int64  // number of segments covering [FromAdj, Limit]
	Large   bool   // Limit >= 10^12: wider wheel, 19 pre-sieved
}

// NewPlan validates [from, limit] and fixes the run geometry.
func NewPlan(from, limit uint64) (*Plan, error) {
	if from < 1 {
		return nil, errors.New("floor must be at least 1")
	}
	if limit < from {
		return nil, errors.New("limit must not be below the floor")
	}
	if limit > MaxLimit {
		return nil, fmt.Errorf("limit exceeds %d (2^64-7)", MaxLimit)
	}

	large := limit >= largeFrom
	step := stepSize(limit)
	if step%smallCycle != 0 || (large && step%largeCycle != 0) {
		panic("sieve: step size is not a wheel multiple")
	}

	fromAdj := adjustFrom(from)
	return &Plan{
		From:    from,
		Limit:   limit,
		FromAdj: fromAdj,
		Step:    step,
		Chunks:  int64((limit-fromAdj)/step + 1),
		Large:   large,
	}, nil
}

// Chunk returns the integer bounds of segment id, both inclusive. The
// final segment is capped at the plan limit; the cap also guards the
// 64-bit wrap of low+step near the top of the range.
func (p *Plan) Chunk(id int64) (low, high uint64) {
	if id < 0 || id >= p.Chunks {
		panic(fmt.Sprintf("sieve: chunk %d out of range [0, %d)", id, p.Chunks))
	}
	low = p.FromAdj + p.Step*uint64(id)
	high = low + p.Step - 1
	if high > p.Limit || high < low {
		high = p.Limit
	}
	return low, high
}

// adjustFrom aligns the floor down to a multiple of 6, subtracts a full
// extra wheel turn, and adds 1. The extra turn matters when the floor
// itself is a prime congruent to 1 mod 6: without it, e.g. 103 in the
// segment [102, 140] would land on the unused index 0.
func adjustFrom(from uint64) uint64 {
	if from <= 5 {
		return 1
	}
	return from - from%6 - 6 + 1
}

// stepSize picks the segment width for the given limit: a dozen small
// cycles below 10^12, then the large cycle scaled by the magnitude of
// the limit.
func stepSize(limit uint64) uint64 {
	if limit < largeFrom {
		return smallCycle * 12
	}
	mult := uint64(1)
	switch {
	case limit >= 10_000_000_000_000_000_000:
		mult = 8
	case limit >= 1_000_000_000_000_000_000:
		mult = 7
	case limit >= 100_000_000_000_000_000:
		mult = 6
	case limit >= 10_000_000_000_000_000:
		mult = 5
	case limit >= 1_000_000_000_000_000:
		mult = 4
	case limit >= 100_000_000_000_000:
		mult = 3
	case limit >= 10_000_000_000_000:
		mult = 2
	}
	return largeCycle * mult
}

// sqrtIdx returns the highest wheel index whose prime can have a
// multiple within [1, n], i.e. floor(sqrt(n))/3.
func sqrtIdx(n uint64) uint64 {
	return internal.SqrtU64(n) / 3
}
