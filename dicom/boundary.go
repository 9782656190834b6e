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

// ItemBoundaryKind enumerates the structural tokens bracketing sequence
// contents, as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
type ItemBoundaryKind int

const (
	// ItemStart begins a sequence item and carries its declared length,
	// which may be undefined.
	ItemStart ItemBoundaryKind = iota

	// ItemEnd terminates a sequence item of undefined length.
	ItemEnd

	// SequenceEnd terminates the enclosing sequence of undefined length.
	SequenceEnd
)

func (k ItemBoundaryKind) String() string {
	switch k {
	case ItemStart:
		return "Item"
	case ItemEnd:
		return "ItemDelimitationItem"
	case SequenceEnd:
		return "SequenceDelimitationItem"
	}
	return fmt.Sprintf("ItemBoundaryKind(%d)", int(k))
}

// ItemBoundary is a decoded sequence item boundary. Boundaries are not
// elements: they carry no value and no value representation.
type ItemBoundary struct {
	Kind ItemBoundaryKind

	// Length is the declared item length for ItemStart and zero otherwise.
	Length uint32
}

// Header converts the boundary to the pseudo-element header the walkers
// produce for it. The VR is the UN placeholder.
func (b ItemBoundary) Header() DataElementHeader {
	tag := ItemTag
	switch b.Kind {
	case ItemEnd:
		tag = ItemDelimitationItemTag
	case SequenceEnd:
		tag = SequenceDelimitationItemTag
	}
	return DataElementHeader{Tag: tag, VR: UNVR, ValueLength: b.Length}
}
