package dicom

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDcmReader_Tag(t *testing.T) {
	dr := dcmReaderFromBytes([]byte{0x08, 0x00, 0x05, 0x00})
	tag, err := dr.Tag(binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, SpecificCharacterSetTag, tag)

	dr = dcmReaderFromBytes([]byte{0x00, 0x08, 0x00, 0x05})
	tag, err = dr.Tag(binary.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, SpecificCharacterSetTag, tag)
}

func TestDcmReader_Limit(t *testing.T) {
	dr := dcmReaderFromBytes([]byte("abcdef"))
	limited := dr.Limit(3)

	got, err := limited.Bytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	_, err = limited.Bytes(1)
	require.Error(t, err)

	// the limited view shares the underlying reader
	got, err = dr.Bytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("def"), got)
}

func TestDcmReader_Skip(t *testing.T) {
	dr := dcmReaderFromBytes([]byte("abcdef"))
	require.NoError(t, dr.Skip(4))

	s, err := dr.String(2)
	require.NoError(t, err)
	assert.Equal(t, "ef", s)

	assert.Equal(t, int64(6), dr.cr.bytesRead)
	assert.Error(t, dr.Skip(1))
}

func TestCurrentPosition(t *testing.T) {
	src := bytes.NewReader([]byte("abcdef"))

	pos, err := currentPosition(src)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	_, err = io.CopyN(io.Discard, src, 4)
	require.NoError(t, err)

	pos, err = currentPosition(src)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)
}
