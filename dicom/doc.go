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

// Package dicom provides the streaming core for reading DICOM data sets
// sequentially as specified in
// [http://dicom.nema.org/medical/dicom/current/output/pdf/part05.pdf].
//
// The package exposes two walkers over the same byte stream. ElementIterator
// decodes each data element fully as it is encountered. LazyElementIterator
// records only an ElementMarker per element, a header plus the absolute byte
// offset of its value, so that large values can be skipped cheaply and read
// later through a bounded ValueWindow.
//
// Both walkers expect the stream to be positioned at the first data set
// element. The file preamble, the "DICM" signature and the group 0002 file
// meta elements must have been consumed by the caller, which is also where
// the transfer syntax UID passed to the constructors comes from.
//
// Sequences (VR SQ) are not materialized. The walkers flatten them: the
// sequence element itself is produced with an empty value, followed by the
// structural tokens bracketing its items (Item, Item Delimitation Item,
// Sequence Delimitation Item) interleaved with the item contents as ordinary
// elements. Nesting is tracked with an explicit frame stack so sequences may
// nest to any depth.
package dicom
