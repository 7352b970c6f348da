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

// Package wheel maps between the compressed sieve representation and the
// integers it denotes. Only integers coprime to 6 are tracked:
//
//	{ 0, 5, 7, 11, 13, ... 3i + 2, 3(i + 1) + 1, ..., N }
//	  0, 1, 2,  3,  4, ... list indices (0 is not used)
//
// so index i stands for 3i+2 when i is odd and 3i+1 when i is even.
// The composite-enumeration recurrence is from Xuedong Luo, "A practical
// sieve algorithm for finding prime numbers", CACM 32(3), 1989.
package wheel

// Value returns the integer denoted by index i shifted by nOff. For an
// unshifted index pass nOff = 0.
func Value(nOff, i uint64) uint64 {
	// (3i+1)|1 is 3i+1 for even i and 3i+2 for odd i.
	return nOff + (3*i+1 | 1)
}

// Index returns the index denoting v, which must be coprime to 6.
// Values v ≡ 5 (mod 6) land on odd indices, v ≡ 1 (mod 6) on even ones.
func Index(v uint64) uint64 {
	if v%6 == 5 {
		return (v - 2) / 3
	}
	return (v - 1) / 3
}

// Stepper walks the wheel indices in order, producing for each index i
// the starting composite position of the prime denoted by i together
// with the alternating increment that enumerates its multiples. The
// recurrence carries no per-prime state beyond (c, k, t).
type Stepper struct {
	i, c, k, t uint64
}

// NewStepper returns a stepper positioned before index 1.
func NewStepper() *Stepper {
	return &Stepper{i: 0, c: 0, k: 1, t: 2}
}

// NewStepperAfter17 returns a stepper positioned after index 5, so the
// first Next yields index 6 (prime 19). This is the resume point for
// segments whose template already covers {5, 7, 11, 13, 17}.
func NewStepperAfter17() *Stepper {
	return &Stepper{i: 5, c: 96, k: 2, t: 34}
}

// NewStepperAfter19 returns a stepper positioned after index 6, so the
// first Next yields index 7 (prime 23). This is the resume point for
// templates that also cover 19.
func NewStepperAfter19() *Stepper {
	return &Stepper{i: 6, c: 120, k: 1, t: 38}
}

// Next advances to the next index and returns it along with the first
// composite position j of its prime and the increment ij. Successive
// composite positions follow as j += ij; ij = t - ij with the t value
// reported by T.
func (s *Stepper) Next() (i, j, ij uint64) {
	s.i++
	s.k = 3 - s.k
	s.c += 4 * s.k * s.i
	s.t += 4 * s.k
	return s.i, s.c, 2*s.i*(3-s.k) + 1
}

// T returns the period of the two alternating gaps at the current index.
func (s *Stepper) T() uint64 {
	return s.t
}

// SkipBelow advances the composite position j to the first position
// >= jOff, preserving the alternation of ij against period t. Positions
// already at or past jOff are returned unchanged.
func SkipBelow(j, ij, t, jOff uint64) (uint64, uint64) {
	if j < jOff {
		j += (jOff - j) / t * t
		if j < jOff {
			j += ij
			ij = t - ij
			if j < jOff {
				j += ij
				ij = t - ij
			}
		}
	}
	return j, ij
}
