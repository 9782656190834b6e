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

// DataElementHeader is the decoded header of a Data Element: its tag, value
// representation and declared value length. For the pseudo-elements produced
// for sequence item boundaries the VR is UN and carries no meaning.
type DataElementHeader struct {
	Tag DataElementTag

	// Value Representation
	VR *VR

	// ValueLength is the declared length of the value field in bytes. Can be
	// equal to 0xFFFFFFFF to represent an undefined length:
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
	ValueLength uint32
}

// IsUndefinedLength is true when the value field's length is streamed rather
// than declared, terminated by a delimitation item.
func (h DataElementHeader) IsUndefinedLength() bool {
	return h.ValueLength == UndefinedLength
}

// EmptyValue is the ValueField of elements that carry no scalar payload: the
// boundary pseudo-elements bracketing sequence items, and sequence elements
// themselves, whose contents are delivered as subsequent walk items.
type EmptyValue struct{}

// DataElement models a DICOM Data Element as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
type DataElement struct {
	DataElementHeader

	// ValueField represents the field within a Data Element that contains
	// its value(s). Can be any of the following types:
	// []string,
	// []byte,
	// [][]byte (encapsulated pixel data fragments),
	// []int16,
	// []uint16,
	// []int32,
	// []uint32,
	// []float32,
	// []float64,
	// EmptyValue
	ValueField interface{}
}
