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

// Package runner drives a sieve plan across a fixed pool of workers.
//
// Chunks are dealt round-robin: worker w sieves chunks w, w+T, w+2T...
// so each worker sees a contiguous stride of ids and the schedule is
// independent of timing. Count and Sum reduce commutatively; Print
// funnels per-chunk buffers through an ordered emitter so the output
// stream is byte-identical for every worker count.
package runner

import (
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/wheelsieve/wheelsieve-go/internal"
	"github.com/wheelsieve/wheelsieve-go/sieve"
)

// Options tunes a run. The zero value uses one worker per logical CPU
// and reports no progress.
type Options struct {
	// Workers is the pool size; values below 1 mean runtime.NumCPU().
	Workers int

	// Progress, when non-nil, receives percentage updates from the
	// first worker during count and sum runs over large intervals.
	// Loss or reordering of progress writes is harmless.
	Progress io.Writer
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return runtime.NumCPU()
	}
	return o.Workers
}

// Count returns the number of primes in the plan's interval.
func Count(ctx context.Context, p *sieve.Plan, opt Options) (uint64, error) {
	return reduce(ctx, p, opt, (*sieve.Segment).Count)
}

// Sum returns the sum of the primes in the plan's interval. The plan
// limit must not exceed sieve.MaxSumLimit or the total can wrap.
func Sum(ctx context.Context, p *sieve.Plan, opt Options) (uint64, error) {
	return reduce(ctx, p, opt, (*sieve.Segment).Sum)
}

// reduce fans the chunks out over the pool and adds up a per-segment
// figure. Addition is commutative, so no ordering is imposed.
func reduce(ctx context.Context, p *sieve.Plan, opt Options, f func(*sieve.Segment) uint64) (uint64, error) {
	tables := sieve.BuildTables(p)
	nw := internal.Min(int64(opt.workers()), p.Chunks)
	totals := make([]uint64, nw)

	g, ctx := errgroup.WithContext(ctx)
	for w := int64(0); w < nw; w++ {
		prog := newProgressMeter(p, opt.Progress, w == 0)
		g.Go(func() error {
			var acc uint64
			for id := w; id < p.Chunks; id += nw {
				if err := ctx.Err(); err != nil {
					return err
				}
				seg := sieve.Sieve(tables, p, id)
				acc += f(seg)
				prog.step(seg)
			}
			totals[w] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total uint64
	for _, t := range totals {
		total += t
	}
	return total, nil
}

// Print writes the primes of the plan's interval to w in ascending
// order, one decimal per line, and returns how many were written. The
// first failed write cancels the remaining chunks; in-flight segments
// finish sieving but their output is discarded.
func Print(ctx context.Context, p *sieve.Plan, w io.Writer, opt Options) (uint64, error) {
	tables := sieve.BuildTables(p)
	nw := internal.Min(int64(opt.workers()), p.Chunks)
	counts := make([]uint64, nw)
	em := newEmitter(w)

	g, ctx := errgroup.WithContext(ctx)
	for wk := int64(0); wk < nw; wk++ {
		g.Go(func() error {
			var printed uint64
			for id := wk; id < p.Chunks; id += nw {
				if err := ctx.Err(); err != nil {
					return err
				}
				seg := sieve.Sieve(tables, p, id)
				buf := seg.AppendText(nil)
				printed += seg.Count()
				if err := em.emit(id, buf); err != nil {
					return err
				}
			}
			counts[wk] = printed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total uint64
	for _, c := range counts {
		total += c
	}
	return total, nil
}
