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
	"strconv"

	"github.com/wheelsieve/wheelsieve-go/bitarray"
	"github.com/wheelsieve/wheelsieve-go/wheel"
)

// Segment is one sieved chunk of the run. The bit array is owned by the
// worker that sieved it and is only read after Sieve returns.
type Segment struct {
	plan *Plan
	id   int64

	low, high uint64
	nOff      uint64 // low - 1
	m         uint64 // last index pairing in the emission walk
	bits      *bitarray.Array
}

// Sieve builds and sieves segment id of the plan. The tables must come
// from BuildTables over the same plan.
func Sieve(t *Tables, p *Plan, id int64) *Segment {
	low, high := p.Chunk(id)
	q := sqrtIdx(high)
	m := (high - low + high&1) / 3
	jMax := high / 3
	nOff := low - 1
	jOff := nOff / 3

	bits := bitarray.New(m + 2)
	bits.CopyFrom(t.Template)

	// The first segment of a full run owns the template primes
	// themselves; restore 5, 7, 11, 13, 17 (and 19, 23).
	if low == 1 {
		bits.Bytes()[0] = 0xfe
	}

	// Candidates below the requested floor sit in the alignment gap of
	// the first segment; at most two of them exist.
	if low == p.FromAdj && wheel.Value(nOff, 1) < p.From {
		bits.Clear(1)
		if wheel.Value(nOff, 2) < p.From {
			bits.Clear(2)
		}
	}

	// The last segment runs past the limit: drop the slack bits, then
	// the top one or two indices if they denote integers beyond it.
	if high == p.Limit {
		bits.ClearFrom(m + 2)
		if wheel.Value(nOff, m+1) > p.Limit {
			bits.Clear(m + 1)
			if wheel.Value(nOff, m) > p.Limit {
				bits.Clear(m)
			}
		}
	}

	s := wheel.NewStepperAfter17()
	first := uint64(6) // 19, the first prime past the template
	if p.Large {
		s = wheel.NewStepperAfter19()
		first = 7 // 23
	}

	for n := first; n <= q; n++ {
		i, j, ij := s.Next()
		if !t.IsPrime.Get(i) {
			continue
		}
		j, ij = wheel.SkipBelow(j, ij, s.T(), jOff)
		for j <= jMax {
			bits.Clear(j - jOff)
			j += ij
			ij = s.T() - ij
		}
	}

	return &Segment{plan: p, id: id, low: low, high: high, nOff: nOff, m: m, bits: bits}
}

// ID returns the 0-based chunk id.
func (s *Segment) ID() int64 {
	return s.id
}

// Bounds returns the inclusive integer range the segment examined.
func (s *Segment) Bounds() (low, high uint64) {
	return s.low, s.high
}

// holdsTwo reports whether this segment is responsible for emitting the
// prime 2; holdsThree likewise for 3. The wheel never represents either,
// so the lowest segment of a run starting at 1 carries them explicitly.
func (s *Segment) holdsTwo() bool {
	return s.low <= 2 && s.plan.From <= 2 && s.plan.Limit >= 2
}

func (s *Segment) holdsThree() bool {
	return s.low <= 3 && s.plan.From <= 3 && s.plan.Limit >= 3
}

// Count returns the number of primes the segment found.
func (s *Segment) Count() uint64 {
	n := s.bits.PopCount()
	if s.holdsTwo() {
		n++
	}
	if s.holdsThree() {
		n++
	}
	return n
}

// Sum returns the sum of the primes the segment found. The caller is
// responsible for keeping the whole-run total inside 64 bits (limit at
// most MaxSumLimit).
func (s *Segment) Sum() uint64 {
	var sum uint64
	if s.holdsTwo() {
		sum += 2
	}
	if s.holdsThree() {
		sum += 3
	}
	for i := uint64(1); i <= s.m; i += 2 {
		if s.bits.Get(i) {
			sum += wheel.Value(s.nOff, i)
		}
		if s.bits.Get(i + 1) {
			sum += wheel.Value(s.nOff, i+1)
		}
	}
	return sum
}

// ForEach calls visit for each prime in ascending order until visit
// returns false.
func (s *Segment) ForEach(visit func(p uint64) bool) {
	if s.holdsTwo() && !visit(2) {
		return
	}
	if s.holdsThree() && !visit(3) {
		return
	}
	for i := uint64(1); i <= s.m; i += 2 {
		if s.bits.Get(i) && !visit(wheel.Value(s.nOff, i)) {
			return
		}
		if s.bits.Get(i+1) && !visit(wheel.Value(s.nOff, i+1)) {
			return
		}
	}
}

// AppendText appends the segment's primes in ascending order, one per
// line in ASCII decimal, and returns the extended buffer.
func (s *Segment) AppendText(buf []byte) []byte {
	s.ForEach(func(p uint64) bool {
		buf = strconv.AppendUint(buf, p, 10)
		buf = append(buf, '\n')
		return true
	})
	return buf
}
