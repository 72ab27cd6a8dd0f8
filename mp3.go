// Package mp3 provides access to MP3 streams; sequences of bytes interleaving
// MPEG audio frames with ID3 metadata tags.
//
// The conventional structure of an MP3 stream is:
//   - Zero or more ID3v2 metadata tags.
//   - One or more MPEG audio frames.
//   - Zero or one ID3v1 metadata tag.
//
// Streams captured from the wild routinely break with convention and
// interleave garbage with the recognized objects. The scanner therefore
// classifies the stream one object at a time and resynchronizes a byte at a
// time across data that matches no object signature.
//
// Audio samples are never decoded; frames are captured as raw bytes together
// with their decoded frame header.
package mp3

import (
	"io"
	"os"

	"github.com/mewkiz/mp3/frame"
	"github.com/mewkiz/mp3/id3"
	"github.com/mewkiz/mp3/internal/bits"
)

// A Stream provides sequential access to the distinct objects of an MP3
// stream.
type Stream struct {
	// The underlying reader of the stream.
	r io.Reader
}

// New returns a handle to the MP3 stream of r. Call Stream.Next to scan the
// objects of the stream one at a time, and Stream.NextFrame or
// Stream.NextID3v2 to scan objects of a single kind.
func New(r io.Reader) *Stream {
	return &Stream{r: r}
}

// Open returns a handle to the MP3 stream of the provided file. Callers
// should close the stream when done reading from it.
func Open(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return New(f), nil
}

// Close closes the underlying reader of the stream, if it implements
// io.Closer.
func (s *Stream) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// An Object is a distinct object of an MP3 stream. Object is one of the
// following concrete types: *frame.Frame, *id3.V1Tag, *id3.V2Tag.
type Object interface{}

// Next scans to the next recognized object of the stream and returns it,
// skipping over garbage data a byte at a time. It returns io.EOF when the
// stream is exhausted, and also when the stream is cut off in the middle of
// an object; a partially read object is discarded, never returned.
func (s *Stream) Next() (Object, error) {
	// Each object signature fits within a 4 byte window.
	var window [4]byte
	if err := s.readFull(window[:]); err != nil {
		return nil, err
	}
	for {
		switch {
		case string(window[:3]) == id3.V1Magic:
			// ID3v1 tag; fixed size of 128 bytes.
			raw := make([]byte, id3.V1Size)
			copy(raw, window[:])
			if err := s.readFull(raw[4:]); err != nil {
				return nil, err
			}
			return &id3.V1Tag{RawBytes: raw}, nil
		case string(window[:3]) == id3.V2Magic:
			// ID3v2 tag. Read the remainder of the 10 byte tag header.
			var remainder [6]byte
			if err := s.readFull(remainder[:]); err != nil {
				return nil, err
			}
			// The last 4 bytes of the tag header declare the size of the tag
			// body as a synchsafe integer, excluding the header itself.
			size := bits.DecodeSynchsafe(remainder[2:])
			raw := make([]byte, id3.V2HeaderSize+int(size))
			copy(raw, window[:])
			copy(raw[4:], remainder[:])
			if err := s.readFull(raw[id3.V2HeaderSize:]); err != nil {
				return nil, err
			}
			return &id3.V2Tag{RawBytes: raw}, nil
		case window[0] == 0xFF && window[1]&0xE0 == 0xE0:
			// Candidate frame sync sequence.
			hdr, err := frame.NewHeader(window[:])
			if err == nil {
				raw := make([]byte, hdr.FrameLength)
				copy(raw, window[:])
				if err := s.readFull(raw[4:]); err != nil {
					return nil, err
				}
				return &frame.Frame{Header: *hdr, RawBytes: raw}, nil
			}
			// False sync; the sync sequence appeared in data that does not
			// decode to a valid frame header. Fall through and resynchronize.
		}
		// No object signature matched. Advance the window by one byte.
		copy(window[:], window[1:])
		if err := s.readFull(window[3:]); err != nil {
			return nil, err
		}
	}
}

// NextFrame scans to the next MPEG audio frame of the stream and returns it,
// skipping over metadata tags and garbage data. It returns io.EOF when the
// stream is exhausted.
func (s *Stream) NextFrame() (*frame.Frame, error) {
	for {
		o, err := s.Next()
		if err != nil {
			return nil, err
		}
		if f, ok := o.(*frame.Frame); ok {
			return f, nil
		}
	}
}

// NextID3v2 scans to the next ID3v2 metadata tag of the stream and returns
// it, skipping over audio frames and garbage data. It returns io.EOF when the
// stream is exhausted.
func (s *Stream) NextID3v2() (*id3.V2Tag, error) {
	for {
		o, err := s.Next()
		if err != nil {
			return nil, err
		}
		if tag, ok := o.(*id3.V2Tag); ok {
			return tag, nil
		}
	}
}

// readFull reads exactly len(buf) bytes from the underlying reader into buf.
// Short reads, including zero byte reads and reads cut off mid-object by a
// truncated stream, are reported as io.EOF.
func (s *Stream) readFull(buf []byte) error {
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return io.EOF
	}
	return nil
}
