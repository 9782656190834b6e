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

// constError allows error sentinels to be declared const.
type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrUnsupportedSyntax is returned by the walker constructors when the
	// transfer syntax UID cannot be resolved to a decoding ruleset.
	ErrUnsupportedSyntax constError = "dicom: unsupported transfer syntax"

	// ErrSequenceDelimiterUnderflow reports a Sequence Delimitation Item
	// encountered outside of any sequence. The stream is malformed and the
	// walker terminates.
	ErrSequenceDelimiterUnderflow constError = "dicom: sequence delimitation item outside of any sequence"

	// ErrItemDelimiterOutsideItem reports an Item Delimitation Item
	// encountered outside of any sequence item.
	ErrItemDelimiterOutsideItem constError = "dicom: item delimitation item outside of any sequence item"

	// ErrInvalidItemTag reports a tag other than Item or Sequence
	// Delimitation Item where a sequence item boundary was expected.
	ErrInvalidItemTag constError = "dicom: invalid tag at sequence item boundary"

	// ErrUndefinedValueLength reports an element whose value cannot be
	// bounded because its declared length is undefined.
	ErrUndefinedValueLength constError = "dicom: value has undefined length"
)
