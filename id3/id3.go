// Package id3 provides access to ID3 metadata tags of MP3 streams. Tags are
// captured as raw bytes; parsing of tag contents (titles, artists, text
// encodings) is outside the scope of this package.
package id3

import (
	"github.com/mewkiz/mp3/internal/bits"
)

// Tag signatures and sizes.
const (
	// V1Magic is present at the beginning of each ID3v1 tag.
	V1Magic = "TAG"
	// V1Size is the fixed total size in bytes of an ID3v1 tag.
	V1Size = 128
	// V2Magic is present at the beginning of each ID3v2 tag.
	V2Magic = "ID3"
	// V2HeaderSize is the size in bytes of an ID3v2 tag header.
	V2HeaderSize = 10
)

// A V1Tag is an ID3v1 metadata tag; a fixed 128 byte block starting with the
// signature "TAG", conventionally located at the very end of an MP3 stream.
type V1Tag struct {
	// Raw bytes of the tag, including the 3 byte signature; always V1Size
	// bytes long.
	RawBytes []byte
}

// A V2Tag is an ID3v2 metadata tag, conventionally located at the very start
// of an MP3 stream.
//
// ID3v2 tag format (pseudo code):
//
//	type ID3V2_TAG struct {
//	   magic    [3]byte // "ID3"
//	   major    uint8
//	   revision uint8
//	   flags    uint8
//	   size     uint32  // synchsafe; size of body, excluding the header
//	   body     [size]byte
//	}
//
// ref: https://id3.org/id3v2.3.0
type V2Tag struct {
	// Raw bytes of the tag, including the 10 byte tag header.
	RawBytes []byte
}

// Version returns the major version and revision number of the tag; e.g. 4
// and 0 for an ID3v2.4.0 tag.
func (tag *V2Tag) Version() (major, revision uint8) {
	return tag.RawBytes[3], tag.RawBytes[4]
}

// Flags returns the flags byte of the tag header. Its bits are passed through
// undecoded.
func (tag *V2Tag) Flags() uint8 {
	return tag.RawBytes[5]
}

// Size returns the declared size in bytes of the tag body, excluding the 10
// byte tag header.
func (tag *V2Tag) Size() int {
	return int(bits.DecodeSynchsafe(tag.RawBytes[6:10]))
}
