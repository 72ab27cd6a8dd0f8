package mp3_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/mewkiz/mp3"
	"github.com/mewkiz/mp3/frame"
	"github.com/mewkiz/mp3/id3"
	"github.com/mewkiz/mp3/internal/bits"
)

// makeFrame returns a valid MPEG-1 layer III stereo frame at 128 kbit/s,
// 44.1 kHz (417 bytes), with its body filled with the provided byte.
func makeFrame(fill byte) []byte {
	buf := make([]byte, 417)
	copy(buf, []byte{0xFF, 0xFB, 0x90, 0x00})
	for i := 4; i < len(buf); i++ {
		buf[i] = fill
	}
	return buf
}

// makeID3v1 returns an ID3v1 tag with its body filled with the provided byte.
func makeID3v1(fill byte) []byte {
	buf := make([]byte, id3.V1Size)
	copy(buf, id3.V1Magic)
	for i := 3; i < len(buf); i++ {
		buf[i] = fill
	}
	return buf
}

// makeID3v2 returns an ID3v2.3.0 tag with a body of size bytes, filled with
// the provided byte.
func makeID3v2(size uint32, fill byte) []byte {
	buf := make([]byte, id3.V2HeaderSize+int(size))
	copy(buf, id3.V2Magic)
	buf[3] = 3 // ID3v2.3.0
	sizeBytes := bits.EncodeSynchsafe(size)
	copy(buf[6:], sizeBytes[:])
	for i := id3.V2HeaderSize; i < len(buf); i++ {
		buf[i] = fill
	}
	return buf
}

// objectInfo summarizes a scanned object for comparison in golden tests.
type objectInfo struct {
	Kind   string
	Length int
}

func infoOf(o mp3.Object) objectInfo {
	switch o := o.(type) {
	case *frame.Frame:
		return objectInfo{Kind: "frame", Length: len(o.RawBytes)}
	case *id3.V1Tag:
		return objectInfo{Kind: "id3v1", Length: len(o.RawBytes)}
	case *id3.V2Tag:
		return objectInfo{Kind: "id3v2", Length: len(o.RawBytes)}
	}
	return objectInfo{Kind: "unknown"}
}

// scanAll returns a summary of each object of the stream.
func scanAll(t *testing.T, data []byte) []objectInfo {
	t.Helper()
	stream := mp3.New(bytes.NewReader(data))
	var infos []objectInfo
	for {
		o, err := stream.Next()
		if err != nil {
			if err != io.EOF {
				t.Fatalf("unable to scan stream; %v", err)
			}
			break
		}
		infos = append(infos, infoOf(o))
	}
	return infos
}

func TestNext(t *testing.T) {
	// An ID3v2 tag, three audio frames interleaved with garbage, and a
	// trailing ID3v1 tag.
	var data []byte
	data = append(data, makeID3v2(100, 0xAA)...)
	data = append(data, makeFrame(0x11)...)
	data = append(data, []byte{0x00, 0x42, 0xFF}...) // garbage
	data = append(data, makeFrame(0x22)...)
	data = append(data, makeFrame(0x33)...)
	data = append(data, makeID3v1(0xBB)...)

	want := []objectInfo{
		{Kind: "id3v2", Length: 110},
		{Kind: "frame", Length: 417},
		{Kind: "frame", Length: 417},
		{Kind: "frame", Length: 417},
		{Kind: "id3v1", Length: 128},
	}
	got := scanAll(t, data)
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("object sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestNextBackToBackFrames(t *testing.T) {
	// Back-to-back frames must scan with zero byte-level drift: each frame's
	// raw bytes start immediately after the previous frame ends.
	const n = 5
	var data []byte
	for i := 0; i < n; i++ {
		data = append(data, makeFrame(byte(i))...)
	}
	stream := mp3.New(bytes.NewReader(data))
	for i := 0; i < n; i++ {
		o, err := stream.Next()
		if err != nil {
			t.Fatalf("unable to scan frame %d; %v", i, err)
		}
		f, ok := o.(*frame.Frame)
		if !ok {
			t.Fatalf("object type mismatch of frame %d; expected *frame.Frame, got %T", i, o)
		}
		want := data[i*417 : (i+1)*417]
		if !bytes.Equal(want, f.RawBytes) {
			t.Errorf("raw bytes mismatch of frame %d", i)
		}
	}
	if _, err := stream.Next(); err != io.EOF {
		t.Errorf("error mismatch after last frame; expected io.EOF, got %v", err)
	}
}

func TestNextResync(t *testing.T) {
	// A spurious sync sequence that does not decode to a valid frame header
	// must not be returned as a frame, and resynchronization must advance one
	// byte at a time. The spurious 0xFF below is directly followed by a valid
	// frame; skipping more than one byte would miss it.
	var data []byte
	data = append(data, 0xFF, 0xFB, 0xF0, 0x00) // reserved bit rate code
	data = append(data, 0xFF)
	data = append(data, makeFrame(0x77)...)
	got := scanAll(t, data)
	want := []objectInfo{
		{Kind: "frame", Length: 417},
	}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("object sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestNextID3v1(t *testing.T) {
	data := makeID3v1(0x5A)
	stream := mp3.New(bytes.NewReader(data))
	o, err := stream.Next()
	if err != nil {
		t.Fatalf("unable to scan stream; %v", err)
	}
	tag, ok := o.(*id3.V1Tag)
	if !ok {
		t.Fatalf("object type mismatch; expected *id3.V1Tag, got %T", o)
	}
	if !bytes.Equal(data, tag.RawBytes) {
		t.Errorf("raw bytes mismatch of ID3v1 tag; expected % 02X, got % 02X", data, tag.RawBytes)
	}
}

func TestNextID3v2(t *testing.T) {
	// Declared size 129 encodes as the synchsafe bytes 00 00 01 01; the tag
	// occupies 10+129 = 139 bytes in total.
	data := makeID3v2(129, 0x5A)
	if want := []byte{0x00, 0x00, 0x01, 0x01}; !bytes.Equal(want, data[6:10]) {
		t.Fatalf("synchsafe size bytes mismatch; expected % 02X, got % 02X", want, data[6:10])
	}
	stream := mp3.New(bytes.NewReader(data))
	tag, err := stream.NextID3v2()
	if err != nil {
		t.Fatalf("unable to scan stream; %v", err)
	}
	if len(tag.RawBytes) != 139 {
		t.Errorf("tag length mismatch; expected 139, got %d", len(tag.RawBytes))
	}
	if got := tag.Size(); got != 129 {
		t.Errorf("declared size mismatch; expected 129, got %d", got)
	}
	major, revision := tag.Version()
	if major != 3 || revision != 0 {
		t.Errorf("version mismatch; expected 3.0, got %d.%d", major, revision)
	}
	if !bytes.Equal(data, tag.RawBytes) {
		t.Errorf("raw bytes mismatch of ID3v2 tag")
	}
}

func TestNextTruncated(t *testing.T) {
	// A stream cut off in the middle of an object signals end of stream; the
	// partial object is discarded, never returned.
	golden := []struct {
		name string
		data []byte
	}{
		{name: "empty stream", data: nil},
		{name: "short window", data: []byte{0xFF, 0xFB, 0x90}},
		{name: "mid frame body", data: makeFrame(0x11)[:300]},
		{name: "mid ID3v1 tag", data: makeID3v1(0x11)[:50]},
		{name: "mid ID3v2 tag header", data: makeID3v2(129, 0x11)[:8]},
		{name: "mid ID3v2 tag body", data: makeID3v2(129, 0x11)[:70]},
		{name: "garbage only", data: []byte{0x00, 0x01, 0x02, 0x03, 0x04}},
	}
	for _, g := range golden {
		stream := mp3.New(bytes.NewReader(g.data))
		o, err := stream.Next()
		if err != io.EOF {
			t.Errorf("error mismatch of %s; expected io.EOF, got object %T, error %v", g.name, o, err)
		}
	}
}

func TestNextFrameSkipsTags(t *testing.T) {
	var data []byte
	data = append(data, makeID3v2(40, 0xAA)...)
	data = append(data, makeFrame(0x11)...)
	data = append(data, makeID3v1(0xBB)...)

	stream := mp3.New(bytes.NewReader(data))
	f, err := stream.NextFrame()
	if err != nil {
		t.Fatalf("unable to scan stream; %v", err)
	}
	if f.BitRate != 128000 || f.SampleRate != 44100 {
		t.Errorf("frame header mismatch; expected 128000 bit/s at 44100 Hz, got %d bit/s at %d Hz", f.BitRate, f.SampleRate)
	}
	if _, err := stream.NextFrame(); err != io.EOF {
		t.Errorf("error mismatch after last frame; expected io.EOF, got %v", err)
	}
}

func TestNextID3v2SkipsFrames(t *testing.T) {
	var data []byte
	data = append(data, makeFrame(0x11)...)
	data = append(data, makeID3v2(40, 0xAA)...)

	stream := mp3.New(bytes.NewReader(data))
	tag, err := stream.NextID3v2()
	if err != nil {
		t.Fatalf("unable to scan stream; %v", err)
	}
	if got := tag.Size(); got != 40 {
		t.Errorf("declared size mismatch; expected 40, got %d", got)
	}
	if _, err := stream.NextID3v2(); err != io.EOF {
		t.Errorf("error mismatch after last tag; expected io.EOF, got %v", err)
	}
}
