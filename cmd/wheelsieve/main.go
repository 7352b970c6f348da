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

// Command wheelsieve counts, sums, or prints the primes in an inclusive
// 64-bit interval.
//
//	wheelsieve [flags] [FROM] N     default interval 1 1000
//	wheelsieve 100 -p               print the primes up to 100
//	wheelsieve 1e+10 1.1e+10        count a high range
//
// Exit status is 0 when at least one prime was found, 1 when none was,
// 2 on argument or bounds errors, and 3 on runtime failures.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wheelsieve/wheelsieve-go/runner"
	"github.com/wheelsieve/wheelsieve-go/sieve"
)

const (
	exitFound   = 0
	exitNoPrime = 1
	exitUsage   = 2
	exitRuntime = 3
)

// stdoutFlushSize is the stdout buffer for print mode. Segment buffers
// that fit collect here; a segment buffer larger than the free space
// fills and flushes it, and bufio writes the rest to the OS directly.
const stdoutFlushSize = 64 << 10

// usageError marks failures that are the caller's fault: bad flags,
// unparseable bounds, an inverted range.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type options struct {
	print   bool
	sum     bool
	quiet   bool
	workers string

	found bool
}

func newRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wheelsieve [flags] [FROM] N",
		Short:         "count, sum, or print the primes in a 64-bit interval",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          o.run,
	}
	cmd.Flags().BoolVarP(&o.print, "print", "p", false, "print primes to standard output, one per line")
	cmd.Flags().BoolVarP(&o.sum, "sum", "s", false, "print the sum of the primes (N at most 29505444490)")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "suppress progress and summary output")
	cmd.Flags().StringVar(&o.workers, "maxworkers", "100%", "worker count: integer, percentage, or auto")
	cmd.Flags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "threads" {
			name = "maxworkers"
		}
		return pflag.NormalizedName(name)
	})
	return cmd
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	from, limit := uint64(1), uint64(1000)
	var err error
	switch len(args) {
	case 1:
		if limit, err = parseBound(args[0]); err != nil {
			return usageError{fmt.Errorf("limit: %w", err)}
		}
	case 2:
		if from, err = parseBound(args[0]); err != nil {
			return usageError{fmt.Errorf("floor: %w", err)}
		}
		if limit, err = parseBound(args[1]); err != nil {
			return usageError{fmt.Errorf("limit: %w", err)}
		}
	}

	if o.print && o.sum {
		return usageError{errors.New("--print and --sum are mutually exclusive")}
	}
	if o.sum && limit > sieve.MaxSumLimit {
		return usageError{fmt.Errorf("sum mode supports N up to %d", sieve.MaxSumLimit)}
	}

	workers, err := parseWorkers(o.workers)
	if err != nil {
		return usageError{fmt.Errorf("maxworkers: %w", err)}
	}

	plan, err := sieve.NewPlan(from, limit)
	if err != nil {
		return usageError{err}
	}

	opt := runner.Options{Workers: workers}
	stderr := cmd.ErrOrStderr()
	if !o.quiet && !o.print {
		opt.Progress = stderr
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	started := time.Now()
	var n uint64
	switch {
	case o.print:
		w := bufio.NewWriterSize(cmd.OutOrStdout(), stdoutFlushSize)
		if n, err = runner.Print(ctx, plan, w, opt); err == nil {
			err = w.Flush()
		}
	case o.sum:
		if n, err = runner.Sum(ctx, plan, opt); err == nil && !o.quiet {
			fmt.Fprintf(stderr, "\rSum of primes: %d\n", n)
		}
	default:
		if n, err = runner.Count(ctx, plan, opt); err == nil && !o.quiet {
			fmt.Fprintf(stderr, "\rPrimes found: %d\n", n)
		}
	}
	if err != nil {
		return err
	}
	if !o.quiet {
		fmt.Fprintf(stderr, "Seconds: %.3f\n", time.Since(started).Seconds())
	}

	o.found = n > 0
	return nil
}

func execute(args []string) int {
	o := &options{}
	cmd := newRootCmd(o)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		if o.found {
			return exitFound
		}
		return exitNoPrime
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.Error(err)

	var ue usageError
	if errors.As(err, &ue) || isFlagError(err) {
		return exitUsage
	}
	return exitRuntime
}

// isFlagError reports whether the error came out of flag or argument
// parsing, which cobra surfaces as plain errors before RunE is reached.
func isFlagError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{"unknown flag", "unknown shorthand flag", "invalid argument", "accepts at most", "flag needs an argument"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func main() {
	os.Exit(execute(os.Args[1:]))
}
