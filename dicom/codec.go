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
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
)

// codec decodes element headers, sequence item boundaries and typed values
// from a byte stream according to a fixed transfer syntax and character set.
// Both walkers delegate all byte-level interpretation to it.
type codec struct {
	syntax transferSyntax
	text   *encoding.Decoder
}

// newCodec resolves the transfer syntax UID into decoding rules. cs is the
// character repertoire applied to text values; nil selects the default
// repertoire.
func newCodec(syntaxUID string, cs encoding.Encoding) (*codec, error) {
	syntax, err := lookupTransferSyntax(syntaxUID)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		cs = DefaultCharacterRepertoire
	}
	return &codec{syntax, cs.NewDecoder()}, nil
}

// decodeHeader advances dr past one element header. io.EOF is returned
// untouched when the stream ends cleanly before the tag.
//
// The item and delimitation tags of group FFFE may legally appear where an
// element header is expected when an undefined-length item's contents end.
// They are returned as headers with the UN placeholder VR and their 32 bit
// length field; the walker converts them to boundary tokens.
func (c *codec) decodeHeader(dr *dcmReader) (DataElementHeader, error) {
	var header DataElementHeader

	tag, err := dr.Tag(c.syntax.byteOrder())
	if err == io.EOF {
		return header, io.EOF
	}
	if err != nil {
		return header, fmt.Errorf("reading tag: %v", err)
	}

	if tag.IsStructural() {
		length, err := dr.UInt32(c.syntax.byteOrder())
		if err != nil {
			return header, fmt.Errorf("reading length of %v: %v", tag, err)
		}
		if tag != ItemTag && length != 0 {
			return header, fmt.Errorf("wrong length for delimitation item %v: got %v, want 0", tag, length)
		}
		return DataElementHeader{Tag: tag, VR: UNVR, ValueLength: length}, nil
	}

	vr, err := c.syntax.readVR(dr, tag)
	if err != nil {
		return header, fmt.Errorf("reading vr of %v: %v", tag, err)
	}

	length, err := c.syntax.readValueLength(dr, vr)
	if err != nil {
		return header, fmt.Errorf("reading length of %v: %v", tag, err)
	}

	return DataElementHeader{Tag: tag, VR: vr, ValueLength: length}, nil
}

// decodeItemBoundary advances dr past one item or delimitation marker. It is
// called when the walker is positioned between sequence items.
func (c *codec) decodeItemBoundary(dr *dcmReader) (ItemBoundary, error) {
	var boundary ItemBoundary
	order := c.syntax.byteOrder()

	tag, err := dr.Tag(order)
	if err != nil {
		return boundary, fmt.Errorf("reading item tag: %v", err)
	}

	length, err := dr.UInt32(order)
	if err != nil {
		return boundary, fmt.Errorf("reading length of %v: %v", tag, err)
	}

	switch tag {
	case ItemTag:
		return ItemBoundary{ItemStart, length}, nil
	case ItemDelimitationItemTag, SequenceDelimitationItemTag:
		if length != 0 {
			return boundary, fmt.Errorf("wrong length for delimitation item %v: got %v, want 0", tag, length)
		}
		if tag == ItemDelimitationItemTag {
			return ItemBoundary{ItemEnd, 0}, nil
		}
		return ItemBoundary{SequenceEnd, 0}, nil
	}

	return boundary, fmt.Errorf("%w: got %v, want %v or %v",
		ErrInvalidItemTag, tag, ItemTag, SequenceDelimitationItemTag)
}

// readValue advances dr past one element's value field and decodes it into
// the buffered type for the VR, as documented on DataElement.ValueField.
func (c *codec) readValue(dr *dcmReader, header DataElementHeader) (interface{}, error) {
	switch header.VR.kind {
	case textVR:
		return c.readText(dr, header.ValueLength, header.VR, unicode.IsSpace)
	case numberBinaryVR:
		return readNumberBinary(dr, header.ValueLength, header.VR, c.syntax.byteOrder())
	case bulkDataVR:
		return c.readBulkData(dr, header)
	case uniqueIdentifierVR:
		return c.readText(dr, header.ValueLength, header.VR, func(r rune) bool {
			return r == 0x00 || r == ' '
		})
	case sequenceVR:
		// sequence contents are delivered as subsequent walk items, never
		// materialized here
		return EmptyValue{}, nil
	case tagVR:
		return c.readTagList(dr, header.ValueLength)
	default:
		return nil, fmt.Errorf("unknown vr type found: %v", header.VR.kind)
	}
}

func (c *codec) readText(dr *dcmReader, length uint32, vr *VR, isPadding func(rune) bool) ([]string, error) {
	if length <= 0 {
		return []string{}, nil
	}

	raw, err := dr.String(int64(length))
	if err != nil {
		return nil, fmt.Errorf("reading text field value: %v", err)
	}

	valueField := raw
	if vr.kind == textVR {
		valueField, err = c.text.String(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding text field value: %v", err)
		}
	}

	// deal with value multiplicity
	strs := strings.Split(valueField, "\\")
	for i, s := range strs {
		if vr == STVR || vr == LTVR {
			strs[i] = strings.TrimRightFunc(s, isPadding)
		} else {
			strs[i] = strings.TrimFunc(s, isPadding)
		}
	}
	return strs, nil
}

func readNumberBinary(dr *dcmReader, length uint32, vr *VR, order binary.ByteOrder) (interface{}, error) {
	var data interface{}

	switch vr {
	case SSVR:
		data = make([]int16, length/2)
	case USVR:
		data = make([]uint16, length/2)
	case SLVR:
		data = make([]int32, length/4)
	case ULVR:
		data = make([]uint32, length/4)
	case FLVR:
		data = make([]float32, length/4)
	case FDVR:
		data = make([]float64, length/8)
	default:
		return nil, fmt.Errorf("unknown vr: %v", vr)
	}

	if err := binary.Read(dr.cr, order, data); err != nil {
		return nil, fmt.Errorf("binary.Read(_, _, _) => %v", err)
	}

	return data, nil
}

func (c *codec) readTagList(dr *dcmReader, length uint32) ([]uint32, error) {
	ret := make([]uint32, length/4) // 4 bytes per tag

	for i := range ret {
		t, err := dr.Tag(c.syntax.byteOrder())
		if err != nil {
			return nil, err
		}
		ret[i] = uint32(t)
	}
	return ret, nil
}

func (c *codec) readBulkData(dr *dcmReader, header DataElementHeader) (interface{}, error) {
	if header.IsUndefinedLength() {
		if header.Tag == PixelDataTag {
			// Specified in http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
			// (7FE0,0010) and undefined length means pixel data in
			// encapsulated (compressed) format
			return c.readFragments(dr)
		}

		return nil, fmt.Errorf("element %v: %w", header.Tag, ErrUndefinedValueLength)
	}

	return dr.Bytes(int64(header.ValueLength))
}

// readFragments reads the fragments of encapsulated pixel data up to and
// including the closing sequence delimitation item. The first fragment is
// the basic offset table, which may be empty.
func (c *codec) readFragments(dr *dcmReader) ([][]byte, error) {
	order := c.syntax.byteOrder()
	fragments := make([][]byte, 0)

	for {
		tag, err := dr.Tag(order)
		if err != nil {
			return nil, fmt.Errorf("reading tag in encapsulated format fragment: %v", err)
		}

		length, err := dr.UInt32(order)
		if err != nil {
			return nil, fmt.Errorf("reading fragment length: %v", err)
		}

		if tag == SequenceDelimitationItemTag {
			if length != 0 {
				return nil, fmt.Errorf("expected 0 length on sequence delimiter, got %v", length)
			}
			return fragments, nil
		}
		if tag != ItemTag {
			return nil, fmt.Errorf("%w: got %v in encapsulated format", ErrInvalidItemTag, tag)
		}
		if length >= UndefinedLength {
			return nil, fmt.Errorf("expected fragment to be of explicit length")
		}

		fragment, err := dr.Bytes(int64(length))
		if err != nil {
			return nil, fmt.Errorf("reading fragment: %v", err)
		}
		fragments = append(fragments, fragment)
	}
}
