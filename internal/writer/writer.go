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

// Package writer creates data files without ever overwriting an existing
// one.
package writer

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unsafe"
)

// BlockSize is the alignment direct I/O requires of both the buffer address
// and the write length.
const BlockSize = 4096

var (
	// ErrDirectIOUnsupported is returned for direct writes on platforms that
	// have no way to bypass the page cache.
	ErrDirectIOUnsupported = errors.New("direct I/O is not supported on this platform")

	// ErrMisaligned is returned for direct writes whose buffer address or
	// length is not a multiple of BlockSize.
	ErrMisaligned = errors.New("buffer is not aligned for direct I/O")
)

// Outcome classifies a single file write.
type Outcome int

const (
	Written Outcome = iota
	Skipped
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Written:
		return "written"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is the outcome of writing one file. Err is set only for Failed.
type Result struct {
	Outcome Outcome
	Bytes   int64
	Err     error
}

// DirectIOSupported reports whether direct writes are available on this
// platform.
func DirectIOSupported() bool {
	return directIOSupported
}

// Writer writes whole files from an in-memory buffer. It holds no mutable
// state and may be shared by any number of goroutines.
type Writer struct {
	direct     bool
	bufferSize int
	perm       os.FileMode
	open       func(path string, flag int, perm os.FileMode) (*os.File, error)
}

// New returns a Writer. bufferSize is the size of the write buffer used for
// cached writes; it is ignored when direct is set.
func New(direct bool, bufferSize int, perm os.FileMode) *Writer {
	w := &Writer{
		direct:     direct,
		bufferSize: bufferSize,
		perm:       perm,
		open:       os.OpenFile,
	}
	if direct {
		w.open = openDirect
	}
	return w
}

// Direct reports whether w bypasses the page cache.
func (w *Writer) Direct() bool {
	return w.direct
}

// Write creates path exclusively and fills it with data. An existing path is
// reported as Skipped and left untouched. If the write fails after the file
// was created, the file is removed so that a rerun does not skip it.
func (w *Writer) Write(path string, data []byte) Result {
	if w.direct {
		if err := checkAlignment(data); err != nil {
			return Result{Outcome: Failed, Err: fmt.Errorf("write %s: %w", path, err)}
		}
	}

	f, err := w.create(path)
	if errors.Is(err, fs.ErrExist) {
		return Result{Outcome: Skipped}
	}
	if err != nil {
		// Some file systems create the file before rejecting O_DIRECT.
		if w.direct {
			removeIfEmpty(path)
		}
		return Result{Outcome: Failed, Err: fmt.Errorf("create %s: %w", path, err)}
	}

	n, err := w.copy(f, data)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		return Result{Outcome: Failed, Bytes: n, Err: fmt.Errorf("write %s: %w", path, err)}
	}

	return Result{Outcome: Written, Bytes: n}
}

func (w *Writer) create(path string) (*os.File, error) {
	return w.open(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, w.perm)
}

func removeIfEmpty(path string) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() || fi.Size() != 0 {
		return
	}
	_ = os.Remove(path)
}

func (w *Writer) copy(f *os.File, data []byte) (int64, error) {
	if w.direct {
		n, err := f.Write(data)
		return int64(n), err
	}

	bw := bufio.NewWriterSize(f, w.bufferSize)
	n, err := bw.Write(data)
	if err != nil {
		return int64(n), err
	}
	if err = bw.Flush(); err != nil {
		return int64(n - bw.Buffered()), fmt.Errorf("flush: %w", err)
	}
	return int64(n), nil
}

func checkAlignment(data []byte) error {
	if len(data)%BlockSize != 0 {
		return fmt.Errorf("%w: length %d", ErrMisaligned, len(data))
	}
	if len(data) == 0 {
		return nil
	}
	if addr := uintptr(unsafe.Pointer(unsafe.SliceData(data))); addr%BlockSize != 0 {
		return fmt.Errorf("%w: address %#x", ErrMisaligned, addr)
	}
	return nil
}
