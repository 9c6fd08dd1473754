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

package writer

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/googlecloudplatform/dummygen/internal/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sys/unix"
)

type writerTest struct {
	suite.Suite
	dir string
}

func TestWriterSuite(t *testing.T) {
	suite.Run(t, new(writerTest))
}

func (t *writerTest) SetupTest() {
	t.dir = t.T().TempDir()
}

func (t *writerTest) newBuffer(size int64, aligned bool) *buffer.Buffer {
	b, err := buffer.New(size, aligned, 11)
	require.NoError(t.T(), err)
	t.T().Cleanup(func() { b.Release() })
	return b
}

func (t *writerTest) TestBufferedWriteCreatesFile() {
	b := t.newBuffer(10*1024, false)
	path := filepath.Join(t.dir, "a.dat")
	w := New(false, 1024, 0644)

	res := w.Write(path, b.Bytes())

	require.NoError(t.T(), res.Err)
	assert.Equal(t.T(), Written, res.Outcome)
	assert.Equal(t.T(), int64(10*1024), res.Bytes)
	content, err := os.ReadFile(path)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), b.Bytes(), content)
}

func (t *writerTest) TestWriteUsesFileMode() {
	path := filepath.Join(t.dir, "mode.dat")
	w := New(false, 1024, 0600)
	old := unix.Umask(0)
	defer unix.Umask(old)

	res := w.Write(path, []byte("x"))

	require.Equal(t.T(), Written, res.Outcome)
	fi, err := os.Stat(path)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), os.FileMode(0600), fi.Mode().Perm())
}

func (t *writerTest) TestExistingFileIsSkippedAndUntouched() {
	path := filepath.Join(t.dir, "existing.dat")
	require.NoError(t.T(), os.WriteFile(path, []byte("original"), 0644))
	w := New(false, 1024, 0644)

	res := w.Write(path, []byte("replacement"))

	assert.Equal(t.T(), Skipped, res.Outcome)
	assert.NoError(t.T(), res.Err)
	assert.Zero(t.T(), res.Bytes)
	content, err := os.ReadFile(path)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), "original", string(content))
}

func (t *writerTest) TestSecondWriteIsSkipped() {
	path := filepath.Join(t.dir, "twice.dat")
	w := New(false, 1024, 0644)

	first := w.Write(path, []byte("abc"))
	second := w.Write(path, []byte("abc"))

	assert.Equal(t.T(), Written, first.Outcome)
	assert.Equal(t.T(), Skipped, second.Outcome)
}

func (t *writerTest) TestConcurrentWritesToSamePathCreateOnce() {
	path := filepath.Join(t.dir, "race.dat")
	w := New(false, 1024, 0644)
	const n = 16
	results := make([]Result, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = w.Write(path, []byte("data"))
		}(i)
	}
	wg.Wait()

	written := 0
	for _, r := range results {
		require.NotEqual(t.T(), Failed, r.Outcome, r.Err)
		if r.Outcome == Written {
			written++
		}
	}
	assert.Equal(t.T(), 1, written)
}

func (t *writerTest) TestEmptyFile() {
	path := filepath.Join(t.dir, "empty.dat")
	w := New(false, 1024, 0644)

	res := w.Write(path, nil)

	assert.Equal(t.T(), Written, res.Outcome)
	fi, err := os.Stat(path)
	require.NoError(t.T(), err)
	assert.Zero(t.T(), fi.Size())
}

func (t *writerTest) TestMissingDirectoryFails() {
	path := filepath.Join(t.dir, "missing", "a.dat")
	w := New(false, 1024, 0644)

	res := w.Write(path, []byte("abc"))

	assert.Equal(t.T(), Failed, res.Outcome)
	assert.ErrorIs(t.T(), res.Err, os.ErrNotExist)
}

func (t *writerTest) TestDirectWriteRejectsMisalignedLength() {
	if !DirectIOSupported() {
		t.T().Skip("direct I/O is not supported on " + runtime.GOOS)
	}
	b := t.newBuffer(8192, true)
	path := filepath.Join(t.dir, "short.dat")

	res := New(true, 0, 0644).Write(path, b.Bytes()[:100])

	assert.Equal(t.T(), Failed, res.Outcome)
	assert.ErrorIs(t.T(), res.Err, ErrMisaligned)
	assert.NoFileExists(t.T(), path)
}

func (t *writerTest) TestDirectWriteRejectsMisalignedAddress() {
	if !DirectIOSupported() {
		t.T().Skip("direct I/O is not supported on " + runtime.GOOS)
	}
	b := t.newBuffer(8192, true)
	path := filepath.Join(t.dir, "offset.dat")

	res := New(true, 0, 0644).Write(path, b.Bytes()[1:4097])

	assert.Equal(t.T(), Failed, res.Outcome)
	assert.ErrorIs(t.T(), res.Err, ErrMisaligned)
	assert.NoFileExists(t.T(), path)
}

func (t *writerTest) TestDirectWrite() {
	if !DirectIOSupported() {
		t.T().Skip("direct I/O is not supported on " + runtime.GOOS)
	}
	b := t.newBuffer(5000, true)
	path := filepath.Join(t.dir, "direct.dat")

	res := New(true, 0, 0644).Write(path, b.Bytes())

	if res.Outcome == Failed && errors.Is(res.Err, unix.EINVAL) {
		t.T().Skip("filesystem of the temp dir does not support O_DIRECT")
	}
	require.NoError(t.T(), res.Err)
	assert.Equal(t.T(), Written, res.Outcome)
	assert.Equal(t.T(), int64(8192), res.Bytes)
	content, err := os.ReadFile(path)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), b.Bytes(), content)
}

func (t *writerTest) TestDirect() {
	assert.True(t.T(), New(true, 0, 0644).Direct())
	assert.False(t.T(), New(false, 1024, 0644).Direct())
}

func (t *writerTest) TestDirectCreateFailureRemovesCreatedFile() {
	b := t.newBuffer(4096, true)
	path := filepath.Join(t.dir, "rejected.dat")
	w := New(true, 0, 0644)
	// The file is created, then O_DIRECT is rejected.
	w.open = func(path string, flag int, perm os.FileMode) (*os.File, error) {
		f, err := os.OpenFile(path, flag, perm)
		if err != nil {
			return nil, err
		}
		f.Close()
		return nil, &os.PathError{Op: "open", Path: path, Err: unix.EINVAL}
	}

	res := w.Write(path, b.Bytes())

	assert.Equal(t.T(), Failed, res.Outcome)
	assert.ErrorIs(t.T(), res.Err, unix.EINVAL)
	assert.NoFileExists(t.T(), path)
	// A rerun writes the file instead of skipping it.
	w.open = os.OpenFile
	assert.Equal(t.T(), Written, w.Write(path, b.Bytes()).Outcome)
}

func (t *writerTest) TestDirectCreateFailureKeepsNonEmptyFile() {
	b := t.newBuffer(4096, true)
	path := filepath.Join(t.dir, "other.dat")
	w := New(true, 0, 0644)
	w.open = func(path string, flag int, perm os.FileMode) (*os.File, error) {
		require.NoError(t.T(), os.WriteFile(path, []byte("data"), 0644))
		return nil, &os.PathError{Op: "open", Path: path, Err: unix.EIO}
	}

	res := w.Write(path, b.Bytes())

	assert.Equal(t.T(), Failed, res.Outcome)
	assert.FileExists(t.T(), path)
}

func (t *writerTest) TestOutcomeString() {
	assert.Equal(t.T(), "written", Written.String())
	assert.Equal(t.T(), "skipped", Skipped.String())
	assert.Equal(t.T(), "failed", Failed.String())
	assert.Equal(t.T(), "Outcome(7)", Outcome(7).String())
}
