// Copyright 2026 Google LLC
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

// Package buffer provides the block of pseudorandom bytes that every
// generated file is written from.
package buffer

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sys/unix"
)

// BlockSize is the alignment required by direct I/O, for both the address
// and the length of a write.
const BlockSize = 4096

// Buffer is an immutable block of pseudorandom bytes. It is filled once in
// New and only read afterwards, so it is safe to share between goroutines.
type Buffer struct {
	data    []byte
	seed    uint64
	aligned bool
	mapped  bool
}

// AlignedSize rounds size up to the next multiple of BlockSize.
func AlignedSize(size int64) int64 {
	return (size + BlockSize - 1) / BlockSize * BlockSize
}

// New allocates and fills a buffer for files of the given size.
//
// When aligned is set, the length is AlignedSize(size) and the memory comes
// from an anonymous mapping, which is page aligned. Otherwise the length is
// exactly size. A seed of 0 picks a random seed.
func New(size int64, aligned bool, seed uint64) (*Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid buffer size: %d", size)
	}

	n := size
	if aligned {
		n = AlignedSize(size)
	}
	if n > math.MaxInt {
		return nil, fmt.Errorf("buffer size %d exceeds the addressable memory", n)
	}

	b := &Buffer{aligned: aligned}
	switch {
	case n == 0:
		b.data = []byte{}
	case aligned:
		prot, flags := unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE
		data, err := unix.Mmap(-1, 0, int(n), prot, flags)
		if err != nil {
			return nil, fmt.Errorf("mmap error: %w", err)
		}
		b.data = data
		b.mapped = true
	default:
		b.data = make([]byte, n)
	}

	for seed == 0 {
		seed = rand.Uint64()
	}
	b.seed = seed
	fill(b.data, seed)

	return b, nil
}

func fill(p []byte, seed uint64) {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	// ChaCha8.Read never fails.
	_, _ = rand.NewChaCha8(key).Read(p)
}

// Bytes returns the contents. Callers must not modify the returned slice.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes each file receives.
func (b *Buffer) Len() int64 {
	return int64(len(b.data))
}

// Aligned reports whether the buffer was built for direct I/O.
func (b *Buffer) Aligned() bool {
	return b.aligned
}

// Seed returns the seed the contents were generated from.
func (b *Buffer) Seed() uint64 {
	return b.seed
}

// Release unmaps the memory of an aligned buffer. It is safe to call more
// than once. The buffer must not be used afterwards.
func (b *Buffer) Release() error {
	if !b.mapped {
		b.data = nil
		return nil
	}

	err := unix.Munmap(b.data)
	b.data = nil
	b.mapped = false
	if err != nil {
		return fmt.Errorf("munmap error: %w", err)
	}
	return nil
}
