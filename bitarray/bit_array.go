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

// Package bitarray provides a fixed-length, byte-backed bit vector with
// LSB-first ordering inside each byte (bit j of byte b has value 1<<j).
//
// The vector is the working storage of the sieve packages: a new array
// starts with every bit set and sieving clears bits. Byte granularity is
// exposed through Bytes so callers can bulk-copy a pre-sieved template
// and patch whole bytes.
package bitarray

import (
	"github.com/cespare/xxhash/v2"

	"github.com/wheelsieve/wheelsieve-go/internal"
)

// Array is a bit vector of fixed capacity. The zero value is not usable;
// construct with New.
type Array struct {
	nbits uint64
	bytes []byte
}

// New returns an array holding nbits bits, all set to 1. The backing
// store is rounded up to whole bytes and the slack bits are set as well;
// callers that care about them use ClearFrom.
func New(nbits uint64) *Array {
	b := make([]byte, (nbits+7)/8)
	for i := range b {
		b[i] = 0xff
	}
	return &Array{nbits: nbits, bytes: b}
}

// Len returns the number of bits requested at construction.
func (a *Array) Len() uint64 {
	return a.nbits
}

// Get reports whether bit i is set.
func (a *Array) Get(i uint64) bool {
	return a.bytes[i>>3]&(1<<(i&7)) != 0
}

// Set sets bit i to 1.
func (a *Array) Set(i uint64) {
	a.bytes[i>>3] |= 1 << (i & 7)
}

// Clear sets bit i to 0.
func (a *Array) Clear(i uint64) {
	a.bytes[i>>3] &^= 1 << (i & 7)
}

// ClearFrom clears every bit at index >= i, through the end of the
// backing store including the slack bits of the final byte.
func (a *Array) ClearFrom(i uint64) {
	if i >= uint64(len(a.bytes))*8 {
		return
	}
	if r := i & 7; r != 0 {
		a.bytes[i>>3] &= 1<<r - 1
		i = (i>>3 + 1) * 8
	}
	for bi := i >> 3; bi < uint64(len(a.bytes)); bi++ {
		a.bytes[bi] = 0
	}
}

// PopCount returns the number of set bits in the whole backing store,
// slack bits included.
func (a *Array) PopCount() uint64 {
	return internal.CountBitsInBytes(a.bytes)
}

// CopyFrom overwrites this array with the first len bytes of src. The
// source must be at least as long as the destination.
func (a *Array) CopyFrom(src *Array) {
	copy(a.bytes, src.bytes[:len(a.bytes)])
}

// Bytes returns the backing store. The caller may patch bytes in place.
func (a *Array) Bytes() []byte {
	return a.bytes
}

// Fingerprint returns a 64-bit hash of the backing store. Two arrays
// with identical contents have identical fingerprints.
func (a *Array) Fingerprint() uint64 {
	return xxhash.Sum64(a.bytes)
}
