package dicom

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lazyWalk(t *testing.T, data []byte) (*bytes.Reader, []*ElementMarker) {
	t.Helper()

	src := bytes.NewReader(data)
	iter, err := NewLazyElementIterator(src, ExplicitVRLittleEndianUID, nil)
	require.NoError(t, err)

	markers, err := collectMarkers(iter)
	require.NoError(t, err)
	return src, markers
}

func TestElementMarker_ValueWindow(t *testing.T) {
	pixels := []byte{0x11, 0x11, 0x22, 0x22, 0x33, 0x33}
	data := newStreamBuilder().
		element(0x00080060, "CS", []byte("MR")).
		element(PixelDataTag, "OW", pixels).
		element(PatientNameTag, "PN", []byte("Doe^John")).
		bytes()

	src, markers := lazyWalk(t, data)
	require.Len(t, markers, 3)

	marker := markers[1]
	require.Equal(t, PixelDataTag, marker.Tag)
	require.Equal(t, OWVR, marker.VR)

	window, err := marker.ValueWindow(src)
	require.NoError(t, err)
	assert.Equal(t, int64(len(pixels)), window.Len())

	got, err := io.ReadAll(window)
	require.NoError(t, err)
	assert.Equal(t, pixels, got)
	assert.Equal(t, data[marker.Pos:marker.Pos+int64(len(pixels))], got)

	// reads past the window's end never return foreign bytes
	n, err := window.Read(make([]byte, 1))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestElementMarker_MoveToStartMatchesWindow(t *testing.T) {
	pixels := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	data := newStreamBuilder().
		element(PixelDataTag, "OW", pixels).
		bytes()

	src, markers := lazyWalk(t, data)
	require.Len(t, markers, 1)
	marker := markers[0]

	window, err := marker.ValueWindow(src)
	require.NoError(t, err)
	viaWindow, err := io.ReadAll(window)
	require.NoError(t, err)

	require.NoError(t, marker.MoveToStart(src))
	viaSeek := make([]byte, marker.ValueLength)
	_, err = io.ReadFull(src, viaSeek)
	require.NoError(t, err)

	assert.Equal(t, viaWindow, viaSeek)
}

func TestElementMarker_WindowDoesNotDisturbMarkers(t *testing.T) {
	data := newStreamBuilder().
		element(0x00080060, "CS", []byte("MR")).
		element(PatientNameTag, "PN", []byte("Doe^John")).
		bytes()

	src, markers := lazyWalk(t, data)
	require.Len(t, markers, 2)

	// bind windows out of stream order; each window re-seeks the source
	second, err := markers[1].ValueWindow(src)
	require.NoError(t, err)
	name, err := io.ReadAll(second)
	require.NoError(t, err)
	assert.Equal(t, "Doe^John", string(name))

	first, err := markers[0].ValueWindow(src)
	require.NoError(t, err)
	modality, err := io.ReadAll(first)
	require.NoError(t, err)
	assert.Equal(t, "MR", string(modality))
}

func TestElementMarker_ByteRegion(t *testing.T) {
	marker := &ElementMarker{DataElementHeader{PixelDataTag, OWVR, 6}, 42}
	offset, length := marker.ByteRegion()
	assert.Equal(t, int64(42), offset)
	assert.Equal(t, int64(6), length)

	undefined := &ElementMarker{DataElementHeader{PixelDataTag, OBVR, UndefinedLength}, 42}
	offset, length = undefined.ByteRegion()
	assert.Equal(t, int64(42), offset)
	assert.Equal(t, int64(-1), length)
}

func TestElementMarker_ValueWindowUndefinedLength(t *testing.T) {
	marker := &ElementMarker{DataElementHeader{PixelDataTag, OBVR, UndefinedLength}, 0}
	_, err := marker.ValueWindow(bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrUndefinedValueLength)
}

func TestValueWindow_Seek(t *testing.T) {
	payload := []byte("0123456789")
	src := bytes.NewReader(append([]byte("junk"), payload...))

	window, err := newValueWindow(src, 4, int64(len(payload)))
	require.NoError(t, err)

	tests := []struct {
		name    string
		offset  int64
		whence  int
		wantPos int64
		read    string
	}{
		{"start", 2, io.SeekStart, 2, "23"},
		{"current", 2, io.SeekCurrent, 6, "67"},
		{"end", -2, io.SeekEnd, 8, "89"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := window.Seek(tc.offset, tc.whence)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPos, pos)

			got := make([]byte, len(tc.read))
			_, err = io.ReadFull(window, got)
			require.NoError(t, err)
			assert.Equal(t, tc.read, string(got))
		})
	}

	_, err = window.Seek(-1, io.SeekStart)
	require.Error(t, err)

	// seeking past the end is allowed; reads then report end-of-window
	pos, err := window.Seek(4, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(14), pos)
	_, err = window.Read(make([]byte, 1))
	assert.Equal(t, io.EOF, err)
}

func TestValueWindow_TruncatedSource(t *testing.T) {
	// the declared window extends past the end of the source
	src := bytes.NewReader([]byte("abc"))
	window, err := newValueWindow(src, 0, 5)
	require.NoError(t, err)

	got, err := io.ReadAll(window)
	assert.Equal(t, io.ErrUnexpectedEOF, err)
	assert.Equal(t, "abc", string(got))
}
