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
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweep sieves the whole plan sequentially and folds every segment.
func sweep(t *testing.T, from, limit uint64, visit func(*Segment)) {
	t.Helper()
	p, err := NewPlan(from, limit)
	require.NoError(t, err)
	tables := BuildTables(p)
	for id := int64(0); id < p.Chunks; id++ {
		visit(Sieve(tables, p, id))
	}
}

func countRange(t *testing.T, from, limit uint64) uint64 {
	var n uint64
	sweep(t, from, limit, func(s *Segment) { n += s.Count() })
	return n
}

func sumRange(t *testing.T, from, limit uint64) uint64 {
	var n uint64
	sweep(t, from, limit, func(s *Segment) { n += s.Sum() })
	return n
}

func primesOf(t *testing.T, from, limit uint64) []uint64 {
	var ps []uint64
	sweep(t, from, limit, func(s *Segment) {
		s.ForEach(func(p uint64) bool {
			ps = append(ps, p)
			return true
		})
	})
	return ps
}

func TestCountAnchors(t *testing.T) {
	assert.Equal(t, uint64(25), countRange(t, 1, 100))
	assert.Equal(t, uint64(168), countRange(t, 1, 1000))
	assert.Equal(t, uint64(78498), countRange(t, 1, 1_000_000))
}

func TestCountHighAnchor(t *testing.T) {
	// 37607 primes in [10^12, 10^12 + 10^6]: exercises the wide wheel,
	// the 19 pre-sieve, and a floor far from 1.
	assert.Equal(t, uint64(37607), countRange(t, 1_000_000_000_000, 1_000_000_000_000+1_000_000))
}

func TestCountBillion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10^9 sweep in short mode")
	}
	assert.Equal(t, uint64(50847534), countRange(t, 1, 1_000_000_000))
}

func TestCountTwoPow32(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 2^32 sweep in short mode")
	}
	assert.Equal(t, uint64(203280221), countRange(t, 1, 1<<32))
}

func TestSumAnchor(t *testing.T) {
	assert.Equal(t, uint64(142913828922), sumRange(t, 1, 2_000_000))
}

func TestSumEqualsEnumeration(t *testing.T) {
	var want uint64
	for _, p := range primesOf(t, 1, 100_000) {
		want += p
	}
	assert.Equal(t, want, sumRange(t, 1, 100_000))
}

func TestCountEqualsEnumeration(t *testing.T) {
	assert.Equal(t, int(countRange(t, 1, 250_000)), len(primesOf(t, 1, 250_000)))
}

func TestBoundaryInclusionOfTwoAndThree(t *testing.T) {
	cases := []struct {
		from, limit uint64
		want        []uint64
	}{
		{1, 2, []uint64{2}},
		{1, 3, []uint64{2, 3}},
		{2, 3, []uint64{2, 3}},
		{2, 2, []uint64{2}},
		{3, 3, []uint64{3}},
		{3, 4, []uint64{3}},
		{4, 6, []uint64{5}},
		{1, 1, nil},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, primesOf(t, c.from, c.limit), "[%d, %d]", c.from, c.limit)
	}
}

func TestFloorOnWheelResidueKept(t *testing.T) {
	// 103 ≡ 1 (mod 6) sits right past the alignment boundary of
	// [102, 140]; the extra wheel turn in the adjusted floor keeps it.
	assert.Equal(t, []uint64{103, 107, 109, 113, 127, 131, 137, 139}, primesOf(t, 102, 140))

	// And a floor that itself is such a prime.
	assert.Equal(t, []uint64{97}, primesOf(t, 97, 97))
	assert.Equal(t, []uint64{103}, primesOf(t, 103, 103))
}

func TestRangeExactness(t *testing.T) {
	for _, c := range [][2]uint64{{24, 28}, {90, 96}, {114, 126}} {
		for _, p := range primesOf(t, c[0], c[1]) {
			assert.GreaterOrEqual(t, p, c[0])
			assert.LessOrEqual(t, p, c[1])
		}
	}
	assert.Empty(t, primesOf(t, 24, 28))
	assert.Empty(t, primesOf(t, 90, 96))
}

func TestAppendTextSmall(t *testing.T) {
	var buf []byte
	sweep(t, 1, 30, func(s *Segment) { buf = s.AppendText(buf) })
	assert.Equal(t, "2\n3\n5\n7\n11\n13\n17\n19\n23\n29\n", string(buf))

	buf = nil
	sweep(t, 97, 97, func(s *Segment) { buf = s.AppendText(buf) })
	assert.Equal(t, "97\n", string(buf))

	buf = nil
	sweep(t, 24, 28, func(s *Segment) { buf = s.AppendText(buf) })
	assert.Empty(t, buf)
}

func TestAppendTextIsSortedAndMatchesCount(t *testing.T) {
	var buf []byte
	var n uint64
	sweep(t, 1, 3_000_000, func(s *Segment) {
		buf = s.AppendText(buf)
		n += s.Count()
	})
	lines := strings.Split(strings.TrimSuffix(string(buf), "\n"), "\n")
	require.Equal(t, n, uint64(len(lines)))

	prev := uint64(0)
	for _, ln := range lines {
		var v uint64
		for i := 0; i < len(ln); i++ {
			v = v*10 + uint64(ln[i]-'0')
		}
		assert.Greater(t, v, prev)
		prev = v
	}
}

func TestAgainstTrialDivisionOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 25 {
		from := uint64(rng.Intn(90_000) + 1)
		limit := from + uint64(rng.Intn(10_000))
		got := primesOf(t, from, limit)

		var want []uint64
		for v := from; v <= limit; v++ {
			if isPrimeSlow(v) {
				want = append(want, v)
			}
		}
		require.Equal(t, want, got, "[%d, %d]", from, limit)
	}
}

func TestForEachStopsEarly(t *testing.T) {
	p, err := NewPlan(1, 100)
	require.NoError(t, err)
	seg := Sieve(BuildTables(p), p, 0)

	var seen []uint64
	seg.ForEach(func(v uint64) bool {
		seen = append(seen, v)
		return len(seen) < 4
	})
	assert.Equal(t, []uint64{2, 3, 5, 7}, seen)
}

func TestSegmentBounds(t *testing.T) {
	p, err := NewPlan(1, 100)
	require.NoError(t, err)
	seg := Sieve(BuildTables(p), p, 0)
	assert.Equal(t, int64(0), seg.ID())
	low, high := seg.Bounds()
	assert.Equal(t, uint64(1), low)
	assert.Equal(t, uint64(100), high)
}
