// Package frame implements access to MPEG audio frames.
package frame

// A Frame contains the header and the raw bytes of an MPEG audio frame. The
// raw bytes hold the complete frame, including the 4 byte frame header, and
// are kept undecoded; parsing audio samples is outside the scope of this
// package.
//
// ref: http://www.mp3-tech.org/programmer/frame_header.html
type Frame struct {
	// Audio frame header.
	Header
	// Raw bytes of the frame, including the 4 byte frame header; its length is
	// given by Header.FrameLength.
	RawBytes []byte
}

// Version specifies the MPEG audio version of a frame.
type Version uint8

// MPEG audio versions.
//
// The bit pattern 01 is reserved and rejected during frame header decoding.
const (
	MPEG25 Version = 0 // MPEG Version 2.5
	MPEG2  Version = 2 // MPEG Version 2 (ISO/IEC 13818-3)
	MPEG1  Version = 3 // MPEG Version 1 (ISO/IEC 11172-3)

	versionReserved Version = 1
)

// versionName is a map from Version to name.
var versionName = map[Version]string{
	MPEG25: "MPEG-2.5",
	MPEG2:  "MPEG-2",
	MPEG1:  "MPEG-1",
}

func (v Version) String() string {
	return versionName[v]
}

// Layer specifies the MPEG audio layer of a frame.
type Layer uint8

// MPEG audio layers.
//
// The bit pattern 00 is reserved and rejected during frame header decoding.
const (
	LayerIII Layer = 1 // Layer III
	LayerII  Layer = 2 // Layer II
	LayerI   Layer = 3 // Layer I

	layerReserved Layer = 0
)

// layerName is a map from Layer to name.
var layerName = map[Layer]string{
	LayerIII: "layer III",
	LayerII:  "layer II",
	LayerI:   "layer I",
}

func (l Layer) String() string {
	return layerName[l]
}

// ChannelMode specifies the channel mode of a frame.
type ChannelMode uint8

// Channel modes.
const (
	Stereo      ChannelMode = iota // stereo
	JointStereo                    // joint stereo
	DualChannel                    // two independent mono channels
	Mono                           // mono
)

// channelModeName is a map from ChannelMode to name.
var channelModeName = map[ChannelMode]string{
	Stereo:      "stereo",
	JointStereo: "joint stereo",
	DualChannel: "dual channel",
	Mono:        "mono",
}

func (m ChannelMode) String() string {
	return channelModeName[m]
}

// Emphasis specifies the de-emphasis to apply during playback.
type Emphasis uint8

// De-emphasis indications.
//
// The bit pattern 10 is reserved and rejected during frame header decoding.
const (
	EmphasisNone    Emphasis = 0 // no de-emphasis
	Emphasis5015    Emphasis = 1 // 50/15 ms
	EmphasisCCITJ17 Emphasis = 3 // CCIT J.17

	emphasisReserved Emphasis = 2
)

// emphasisName is a map from Emphasis to name.
var emphasisName = map[Emphasis]string{
	EmphasisNone:    "none",
	Emphasis5015:    "50/15 ms",
	EmphasisCCITJ17: "CCIT J.17",
}

func (e Emphasis) String() string {
	return emphasisName[e]
}
