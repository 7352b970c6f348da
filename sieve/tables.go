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

package sieve

import (
	"github.com/wheelsieve/wheelsieve-go/bitarray"
	"github.com/wheelsieve/wheelsieve-go/wheel"
)

// Tables holds the two immutable arrays every segment worker reads: the
// primality table over the wheel indices up to sqrt(limit)/3, and the
// pre-sieved segment template. Build them once per plan on one
// goroutine; afterwards they are safe to share.
type Tables struct {
	IsPrime  *bitarray.Array
	Template *bitarray.Array
}

// BuildTables constructs both tables for the plan. Building is
// deterministic: two plans over the same interval yield byte-identical
// tables.
func BuildTables(p *Plan) *Tables {
	return &Tables{
		IsPrime:  buildIsPrime(sqrtIdx(p.Limit)),
		Template: buildTemplate(p),
	}
}

// buildIsPrime sieves the wheel indices 1..q themselves, leaving bit i
// set iff the integer at index i is prime.
func buildIsPrime(q uint64) *bitarray.Array {
	arr := bitarray.New(q + 2)
	arr.Clear(0)

	s := wheel.NewStepper()
	for n := uint64(1); n <= q; n++ {
		i, j, ij := s.Next()
		if !arr.Get(i) {
			continue
		}
		for j <= q {
			arr.Clear(j)
			j += ij
			ij = s.T() - ij
		}
	}
	return arr
}

// buildTemplate clears the multiples of the template primes from a
// segment-sized array positioned at the plan's adjusted floor. Because
// the segment width is a multiple of the wheel cycle, the same template
// tiles every segment of the run.
func buildTemplate(p *Plan) *bitarray.Array {
	sieveSz := p.Step / 3
	arr := bitarray.New(sieveSz + 2)
	arr.Clear(0)

	nPrimes := uint64(5) // 5, 7, 11, 13, 17
	if p.Large {
		nPrimes = 6 // and 19
	}
	jOff := (p.FromAdj - 1) / 3
	memBits := uint64(len(arr.Bytes())) * 8

	s := wheel.NewStepper()
	for n := uint64(0); n < nPrimes; n++ {
		_, j, ij := s.Next()
		j, ij = wheel.SkipBelow(j, ij, s.T(), jOff)
		for j-jOff < memBits {
			arr.Clear(j - jOff)
			j += ij
			ij = s.T() - ij
		}
	}

	// The template primes are composites of themselves: with the run
	// starting at 1 the first segment owns their bits, so hand it a
	// byte 0 it can restore with a single store (0xfe).
	if p.FromAdj == 1 {
		if p.Large {
			arr.Bytes()[0] = 0x80
		} else {
			arr.Bytes()[0] = 0xc0
		}
	}

	// Bits past the cycle boundary never describe this segment.
	arr.ClearFrom(sieveSz + 1)
	return arr
}
