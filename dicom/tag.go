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

import "fmt"

// DataElementTag is a unique identifier for a Data Element composed of an
// ordered pair of numbers called the group number and the element number as
// specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10.
//
// The least significant 16 bits is the element number. The most significant
// 16 bits is the group number.
type DataElementTag uint32

// NewDataElementTag returns the tag with the given group and element numbers.
func NewDataElementTag(group, element uint16) DataElementTag {
	return DataElementTag(uint32(group)<<16 | uint32(element))
}

// GroupNumber returns the group number component of the DataElementTag
func (t DataElementTag) GroupNumber() uint16 {
	return uint16(t >> 16)
}

// ElementNumber returns the element number component of the DataElementTag
func (t DataElementTag) ElementNumber() uint16 {
	return uint16(t & 0xFFFF)
}

// Compare returns -1, 0 or 1 when t orders before, equal to or after other.
// Tags are totally ordered by (group number, element number).
func (t DataElementTag) Compare(other DataElementTag) int {
	if t < other {
		return -1
	}
	if t > other {
		return 1
	}
	return 0
}

// IsStructural is true if and only if the tag is one of the item or
// delimitation tags that bracket sequence contents. Structural tags carry no
// value representation.
func (t DataElementTag) IsStructural() bool {
	return t == ItemTag || t == ItemDelimitationItemTag || t == SequenceDelimitationItemTag
}

func (t DataElementTag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.GroupNumber(), t.ElementNumber())
}

// Tags referenced by the streaming core. Structural tags are specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
const (
	SpecificCharacterSetTag     DataElementTag = 0x00080005
	TransferSyntaxUIDTag        DataElementTag = 0x00020010
	PatientNameTag              DataElementTag = 0x00100010
	PixelDataTag                DataElementTag = 0x7FE00010
	ItemTag                     DataElementTag = 0xFFFEE000
	ItemDelimitationItemTag     DataElementTag = 0xFFFEE00D
	SequenceDelimitationItemTag DataElementTag = 0xFFFEE0DD
)

// dictionaryVRByTag backs DictionaryVR for the implicit VR transfer syntax,
// which does not encode VRs in the stream. Only attributes the streaming
// core is commonly asked to decode are listed; callers needing the full
// data dictionary resolve VRs upstream.
var dictionaryVRByTag = map[DataElementTag]*VR{
	SpecificCharacterSetTag: CSVR,
	TransferSyntaxUIDTag:    UIVR,
	PatientNameTag:          PNVR,
	PixelDataTag:            OWVR,
	0x00080016:              UIVR, // SOP Class UID
	0x00080018:              UIVR, // SOP Instance UID
	0x00080020:              DAVR, // Study Date
	0x00080060:              CSVR, // Modality
	0x00081140:              SQVR, // Referenced Image Sequence
	0x00100020:              LOVR, // Patient ID
	0x00180050:              DSVR, // Slice Thickness
	0x00200013:              ISVR, // Instance Number
	0x00280010:              USVR, // Rows
	0x00280011:              USVR, // Columns
	0x00400260:              SQVR, // Performed Protocol Code Sequence
}

// DictionaryVR returns the VR registered for the tag in the DICOM data
// dictionary, or UN when the tag is not known to this package.
func (t DataElementTag) DictionaryVR() *VR {
	if vr, ok := dictionaryVRByTag[t]; ok {
		return vr
	}
	return UNVR
}
