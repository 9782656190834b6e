package dicom

import (
	"bytes"
	"encoding/binary"
	"io"
)

// streamBuilder assembles explicit VR little endian encoded byte streams for
// tests. Streams built with it exclude the preamble and file meta group, as
// the walkers expect.
type streamBuilder struct {
	buf   bytes.Buffer
	order binary.ByteOrder
}

func newStreamBuilder() *streamBuilder {
	return &streamBuilder{order: binary.LittleEndian}
}

func (b *streamBuilder) tag(tag DataElementTag) *streamBuilder {
	binary.Write(&b.buf, b.order, tag.GroupNumber())
	binary.Write(&b.buf, b.order, tag.ElementNumber())
	return b
}

// element writes a complete element with an explicit VR header and value
func (b *streamBuilder) element(tag DataElementTag, vr string, value []byte) *streamBuilder {
	b.tag(tag)
	b.buf.WriteString(vr)
	if has32BitLengthName(vr) {
		binary.Write(&b.buf, b.order, uint16(0)) // reserved
		binary.Write(&b.buf, b.order, uint32(len(value)))
	} else {
		binary.Write(&b.buf, b.order, uint16(len(value)))
	}
	b.buf.Write(value)
	return b
}

// sequenceStart writes an SQ element header with the given declared length
func (b *streamBuilder) sequenceStart(tag DataElementTag, length uint32) *streamBuilder {
	b.tag(tag)
	b.buf.WriteString("SQ")
	binary.Write(&b.buf, b.order, uint16(0)) // reserved
	binary.Write(&b.buf, b.order, length)
	return b
}

func (b *streamBuilder) item(length uint32) *streamBuilder {
	b.tag(ItemTag)
	binary.Write(&b.buf, b.order, length)
	return b
}

func (b *streamBuilder) itemDelimiter() *streamBuilder {
	b.tag(ItemDelimitationItemTag)
	binary.Write(&b.buf, b.order, uint32(0))
	return b
}

func (b *streamBuilder) sequenceDelimiter() *streamBuilder {
	b.tag(SequenceDelimitationItemTag)
	binary.Write(&b.buf, b.order, uint32(0))
	return b
}

func (b *streamBuilder) raw(p []byte) *streamBuilder {
	b.buf.Write(p)
	return b
}

func (b *streamBuilder) bytes() []byte {
	return b.buf.Bytes()
}

func has32BitLengthName(vr string) bool {
	switch vr {
	case "OB", "OD", "OF", "OL", "OW", "SQ", "UC", "UR", "UT", "UN":
		return true
	}
	return false
}

func dcmReaderFromBytes(data []byte) *dcmReader {
	return newDcmReader(bytes.NewReader(data))
}

// collectElements drains an eager iterator, failing on the first error
func collectElements(it *ElementIterator) ([]*DataElement, error) {
	var elements []*DataElement
	for {
		elem, err := it.Next()
		if err == io.EOF {
			return elements, nil
		}
		if err != nil {
			return elements, err
		}
		elements = append(elements, elem)
	}
}

// collectMarkers drains a lazy iterator, failing on the first error
func collectMarkers(it *LazyElementIterator) ([]*ElementMarker, error) {
	var markers []*ElementMarker
	for {
		m, err := it.Next()
		if err == io.EOF {
			return markers, nil
		}
		if err != nil {
			return markers, err
		}
		markers = append(markers, m)
	}
}
