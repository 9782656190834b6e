// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"fmt"
	"io"
)

// ValueWindow is a read- and seek-constrained view over a seekable source,
// delimited by [start, start+length). Reads never return bytes past the
// window's end, and seeks are interpreted in the window's own coordinate
// space where offset 0 is the window's start.
//
// The window borrows the underlying source: while in use, nobody else may
// read or seek the source, and the source's position is wherever the window
// last left it.
type ValueWindow struct {
	src    io.ReadSeeker
	start  int64
	length int64
	off    int64 // window-relative
}

func newValueWindow(src io.ReadSeeker, start, length int64) (*ValueWindow, error) {
	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to window start: %v", err)
	}
	return &ValueWindow{src, start, length, 0}, nil
}

// Len returns the window's total length in bytes
func (w *ValueWindow) Len() int64 {
	return w.length
}

func (w *ValueWindow) Read(p []byte) (int, error) {
	if w.off >= w.length {
		return 0, io.EOF
	}
	if remaining := w.length - w.off; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := w.src.Read(p)
	w.off += int64(n)
	if err == io.EOF && w.off < w.length {
		// the source ended before the declared window did
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

// Seek repositions the window. offset is window-relative: io.SeekStart is
// the window's first byte and io.SeekEnd its end. Seeking past the end is
// allowed, like io.SectionReader; subsequent reads return io.EOF.
func (w *ValueWindow) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += w.off
	case io.SeekEnd:
		offset += w.length
	default:
		return 0, fmt.Errorf("invalid whence %d seeking value window", whence)
	}
	if offset < 0 {
		return 0, fmt.Errorf("negative position %d seeking value window", offset)
	}

	if _, err := w.src.Seek(w.start+offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seeking within value window: %v", err)
	}
	w.off = offset
	return offset, nil
}
