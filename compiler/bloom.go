// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import "github.com/cespare/xxhash/v2"

// bloomFilter gives the static route bucket a cheap negative lookup:
// "definitely not a static route" without touching the map at all.
// False positives are possible (rare, by construction); false
// negatives are not.
//
// The numHashFuncs bit positions are derived from two xxhash digests
// (of the key, and of the key with a trailing NUL byte) by double
// hashing (Kirsch–Mitzenmacher: h1 + i*h2), rather than running
// numHashFuncs independent hash functions over the key.
type bloomFilter struct {
	bits []uint64
	size uint64
	k    int
}

func newBloomFilter(size uint64, numHashFuncs int) *bloomFilter {
	if size == 0 {
		size = 1024
	}
	if numHashFuncs <= 0 {
		numHashFuncs = 3
	}
	return &bloomFilter{
		bits: make([]uint64, (size+63)/64),
		size: size,
		k:    numHashFuncs,
	}
}

func (b *bloomFilter) positions(key string) (h1, h2 uint64) {
	h1 = xxhash.Sum64String(key)
	h2 = xxhash.Sum64String(key + "\x00")
	return h1, h2
}

func (b *bloomFilter) add(key string) {
	h1, h2 := b.positions(key)
	for i := 0; i < b.k; i++ {
		pos := (h1 + uint64(i)*h2) % b.size
		b.bits[pos/64] |= 1 << (pos % 64)
	}
}

// mayContain returns false only when key is definitely absent.
func (b *bloomFilter) mayContain(key string) bool {
	h1, h2 := b.positions(key)
	for i := 0; i < b.k; i++ {
		pos := (h1 + uint64(i)*h2) % b.size
		if b.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}
