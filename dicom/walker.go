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

	"golang.org/x/text/encoding"
)

// sideEffectTags lists attributes whose values influence how later elements
// decode. The walkers emit them like any other element; the table exists so
// that recognizing a new such attribute does not touch the stepping logic.
// Callers of the lazy walker match these tags to know which values to
// resolve before decoding subsequent text, typically feeding (0008,0005)
// through LookupEncoding.
var sideEffectTags = map[DataElementTag]struct{}{
	SpecificCharacterSetTag: {},
}

// walkFrame records the expectation inside one nesting level: between items
// (awaiting an item boundary) or inside an item's contents (awaiting an
// element header).
type walkFrame struct {
	awaitingBoundary bool
}

// walkToken is one decoded step of the stream: an element header or a
// boundary pseudo-header. When plain is true the token is an ordinary
// element and its value bytes follow at the cursor; the eager walker decodes
// them and the lazy walker records their offset and skips them.
type walkToken struct {
	header DataElementHeader
	plain  bool
}

// walker is the nesting-aware state machine shared by both iterators. It
// decides at each step whether to expect an element header or a sequence
// item boundary, dispatches to the codec, and maintains the frame stack.
// Decode failures are terminal: the failing step surfaces the error once and
// every later step reports io.EOF.
type walker struct {
	codec  *codec
	dr     *dcmReader
	frames []walkFrame
	done   bool
}

func newWalker(r io.Reader, syntaxUID string, cs encoding.Encoding) (*walker, error) {
	c, err := newCodec(syntaxUID, cs)
	if err != nil {
		return nil, fmt.Errorf("creating codec: %w", err)
	}
	return &walker{codec: c, dr: newDcmReader(r)}, nil
}

func (w *walker) depth() int {
	return len(w.frames)
}

func (w *walker) top() *walkFrame {
	return &w.frames[len(w.frames)-1]
}

// fail latches the terminal state and returns err for surfacing exactly
// once. Byte alignment cannot be trusted past a failed decode, so there is
// no resynchronization.
func (w *walker) fail(err error) error {
	w.done = true
	return err
}

func (w *walker) step() (walkToken, error) {
	var none walkToken

	if w.done {
		return none, io.EOF
	}

	if len(w.frames) > 0 && w.top().awaitingBoundary {
		boundary, err := w.codec.decodeItemBoundary(w.dr)
		if err != nil {
			return none, w.fail(fmt.Errorf("decoding item boundary: %w", err))
		}
		switch boundary.Kind {
		case ItemStart:
			// the following tokens are this item's contents
			w.top().awaitingBoundary = false
		case ItemEnd:
			// stay between items, ready for the next one or the sequence's end
		case SequenceEnd:
			w.frames = w.frames[:len(w.frames)-1]
		}
		return walkToken{header: boundary.Header()}, nil
	}

	header, err := w.codec.decodeHeader(w.dr)
	if err == io.EOF {
		if len(w.frames) > 0 {
			return none, w.fail(fmt.Errorf("unexpected EOF inside sequence at depth %d", len(w.frames)))
		}
		w.done = true
		return none, io.EOF
	}
	if err != nil {
		return none, w.fail(fmt.Errorf("decoding header: %v", err))
	}

	// delimiters surfacing in element position close an undefined-length
	// item or sequence
	switch header.Tag {
	case ItemDelimitationItemTag:
		if len(w.frames) == 0 {
			return none, w.fail(ErrItemDelimiterOutsideItem)
		}
		w.top().awaitingBoundary = true
		return walkToken{header: header}, nil
	case SequenceDelimitationItemTag:
		if len(w.frames) == 0 {
			return none, w.fail(ErrSequenceDelimiterUnderflow)
		}
		w.frames = w.frames[:len(w.frames)-1]
		return walkToken{header: header}, nil
	case ItemTag:
		if len(w.frames) == 0 {
			return none, w.fail(fmt.Errorf("%w: item tag in element position", ErrInvalidItemTag))
		}
		// an explicit-length item ends without a delimiter; this tag starts
		// the sequence's next item
		return walkToken{header: header}, nil
	}

	if _, special := sideEffectTags[header.Tag]; special {
		return walkToken{header: header, plain: true}, nil
	}

	if header.VR == SQVR {
		if header.ValueLength == 0 {
			// an explicitly empty sequence brackets nothing
			return walkToken{header: header}, nil
		}
		w.frames = append(w.frames, walkFrame{awaitingBoundary: true})
		return walkToken{header: header}, nil
	}

	return walkToken{header: header, plain: true}, nil
}

// ElementIterator walks a DICOM data set eagerly, decoding every element's
// value as it is encountered. The stream must be positioned at the first
// data set element; file meta information is consumed upstream.
//
// The iterator is finite and non-restartable, produces exactly one error per
// instance, and must not be shared across goroutines.
type ElementIterator struct {
	w *walker
}

// NewElementIterator creates an eager walker over r, decoding according to
// the given transfer syntax UID and character repertoire (nil selects the
// default). It fails when the transfer syntax cannot be resolved.
func NewElementIterator(r io.Reader, syntaxUID string, cs encoding.Encoding) (*ElementIterator, error) {
	w, err := newWalker(r, syntaxUID, cs)
	if err != nil {
		return nil, err
	}
	return &ElementIterator{w}, nil
}

// Next returns the next element in stream order. Sequence elements and item
// boundaries are produced with an EmptyValue ValueField. When the stream is
// exhausted, or after any previously returned error, Next returns io.EOF.
func (it *ElementIterator) Next() (*DataElement, error) {
	tok, err := it.w.step()
	if err != nil {
		return nil, err
	}

	if !tok.plain {
		return &DataElement{tok.header, EmptyValue{}}, nil
	}

	value, err := it.w.codec.readValue(it.w.dr, tok.header)
	if err != nil {
		return nil, it.w.fail(fmt.Errorf("reading value of %v: %w", tok.header.Tag, err))
	}
	return &DataElement{tok.header, value}, nil
}

// Depth reports the current sequence nesting depth.
func (it *ElementIterator) Depth() int {
	return it.w.depth()
}

// Close discards all remaining elements in the iterator
func (it *ElementIterator) Close() error {
	for _, err := it.Next(); err != io.EOF; _, err = it.Next() {
		if err != nil {
			return fmt.Errorf("unexpected error closing iterator: %v", err)
		}
	}
	return nil
}

// LazyElementIterator walks a DICOM data set without materializing values:
// each step produces an ElementMarker recording the element's header and the
// absolute offset of its value field, then skips the value bytes. Values are
// fetched later through ElementMarker.ValueWindow against the same source.
//
// Elements with undefined-length values (encapsulated pixel data) cannot be
// skipped without decoding and terminate the lazy walk with
// ErrUndefinedValueLength; use ElementIterator for such streams.
type LazyElementIterator struct {
	w   *walker
	src io.ReadSeeker
}

// NewLazyElementIterator creates a lazy walker over src. The source must not
// be repositioned by anyone else while the walk is in progress; markers
// remain valid afterwards for as long as src stays alive.
func NewLazyElementIterator(src io.ReadSeeker, syntaxUID string, cs encoding.Encoding) (*LazyElementIterator, error) {
	w, err := newWalker(src, syntaxUID, cs)
	if err != nil {
		return nil, err
	}
	return &LazyElementIterator{w, src}, nil
}

// Next returns the marker of the next element in stream order. Markers for
// item boundaries carry the UN placeholder VR. When the stream is exhausted,
// or after any previously returned error, Next returns io.EOF.
func (it *LazyElementIterator) Next() (*ElementMarker, error) {
	tok, err := it.w.step()
	if err != nil {
		return nil, err
	}

	pos, err := currentPosition(it.src)
	if err != nil {
		return nil, it.w.fail(fmt.Errorf("querying position of %v: %v", tok.header.Tag, err))
	}
	marker := &ElementMarker{tok.header, pos}

	if tok.plain {
		if tok.header.IsUndefinedLength() {
			return nil, it.w.fail(fmt.Errorf("element %v: %w", tok.header.Tag, ErrUndefinedValueLength))
		}
		if _, err := it.src.Seek(int64(tok.header.ValueLength), io.SeekCurrent); err != nil {
			return nil, it.w.fail(fmt.Errorf("skipping value of %v: %v", tok.header.Tag, err))
		}
	}

	return marker, nil
}

// Depth reports the current sequence nesting depth.
func (it *LazyElementIterator) Depth() int {
	return it.w.depth()
}

// Close discards all remaining markers in the iterator
func (it *LazyElementIterator) Close() error {
	for _, err := it.Next(); err != io.EOF; _, err = it.Next() {
		if err != nil {
			return fmt.Errorf("unexpected error closing iterator: %v", err)
		}
	}
	return nil
}
