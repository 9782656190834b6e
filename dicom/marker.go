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

// ElementMarker is an immutable capture of a decoded element header plus the
// absolute byte offset of its value field, produced by LazyElementIterator.
// It owns no value bytes: the caller keeps the originating source alive and
// fetches the value later through ValueWindow or MoveToStart.
//
// A marker's offset is meaningful only against the exact source instance it
// was derived from. For the pseudo-elements of item boundaries the VR is the
// UN placeholder.
type ElementMarker struct {
	DataElementHeader

	// Pos is the offset of the first byte of the element's value field,
	// relative to the origin the source's Seek uses.
	Pos int64
}

// ValueWindow seeks src to the marker's value start and returns a view
// restricted to exactly the value's bytes, [Pos, Pos+ValueLength). The
// window borrows src exclusively; interleaving other reads or seeks on src
// while using the window corrupts its position.
//
// Fails when the seek fails or when the value's length is undefined, since
// an unbounded value cannot be windowed.
func (m *ElementMarker) ValueWindow(src io.ReadSeeker) (*ValueWindow, error) {
	if m.IsUndefinedLength() {
		return nil, fmt.Errorf("element %v: %w", m.Tag, ErrUndefinedValueLength)
	}
	w, err := newValueWindow(src, m.Pos, int64(m.ValueLength))
	if err != nil {
		return nil, fmt.Errorf("binding value window of %v: %v", m.Tag, err)
	}
	return w, nil
}

// MoveToStart seeks src to the marker's recorded value offset
func (m *ElementMarker) MoveToStart(src io.Seeker) error {
	if _, err := src.Seek(m.Pos, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to value of %v: %v", m.Tag, err)
	}
	return nil
}

// ByteRegion returns the marker's value location as an offset and length,
// for callers assembling bulk data references. The length is -1 when the
// value's length is undefined.
func (m *ElementMarker) ByteRegion() (offset, length int64) {
	if m.IsUndefinedLength() {
		return m.Pos, -1
	}
	return m.Pos, int64(m.ValueLength)
}
