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

package runner

import (
	"fmt"
	"io"

	"github.com/wheelsieve/wheelsieve-go/sieve"
)

// progressFloor is the plan limit at or below which progress reporting
// stays silent; short runs finish before a percentage means anything.
const progressFloor uint64 = 2_000_000_000

// progressMeter emits "  <p>%\r" updates from the first worker as its
// chunks complete. The percentage is advisory: other workers run ahead
// or behind, so it is capped at 99 and updates only when the integer
// value moves.
type progressMeter struct {
	w     io.Writer
	plan  *sieve.Plan
	last  int
	quiet bool
}

func newProgressMeter(p *sieve.Plan, w io.Writer, active bool) *progressMeter {
	quiet := !active || w == nil || p.Limit <= progressFloor
	return &progressMeter{w: w, plan: p, last: -1, quiet: quiet}
}

func (m *progressMeter) step(seg *sieve.Segment) {
	if m.quiet {
		return
	}
	_, high := seg.Bounds()
	span := m.plan.Limit - m.plan.FromAdj
	if span == 0 {
		return
	}
	pct := int(float64(high-m.plan.FromAdj) / float64(span) * 100)
	if pct > 99 {
		pct = 99
	}
	if pct != m.last {
		m.last = pct
		fmt.Fprintf(m.w, "  %d%%\r", pct)
	}
}
