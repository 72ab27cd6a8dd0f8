package frame

import (
	"bytes"
	"fmt"

	"github.com/eaburns/bit"
	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
)

// A Header is a frame header, which contains information about the frame like
// its MPEG audio version, layer, bit rate and channel mode. To facilitate
// random access decoding each frame header starts with a sync code. This
// allows the decoder to synchronize and locate the start of a frame header.
type Header struct {
	// MPEG audio version; MPEG1, MPEG2 or MPEG25.
	Version Version
	// MPEG audio layer; LayerI, LayerII or LayerIII.
	Layer Layer
	// CRCProtected is true if a 16-bit CRC of the frame follows the frame
	// header.
	CRCProtected bool
	// Bit rate in bits per second.
	BitRate uint32
	// Sample rate in Hz.
	SampleRate uint32
	// Padded is true if the frame contains one extra slot to match the exact
	// bit rate; a slot is 4 bytes long for layer I frames and 1 byte long
	// otherwise.
	Padded bool
	// Private bit, free for application specific use.
	Private bool
	// Channel mode; Stereo, JointStereo, DualChannel or Mono.
	ChannelMode ChannelMode
	// Joint stereo coding mode extension; only meaningful when ChannelMode is
	// JointStereo, and zero otherwise.
	ModeExtension uint8
	// Copyright is true if the audio is copyrighted.
	Copyright bool
	// Original is true if the frame is located on its original media.
	Original bool
	// De-emphasis to apply during playback.
	Emphasis Emphasis
	// Number of audio samples contained in the frame; fixed per MPEG audio
	// version and layer.
	SampleCount int
	// Length in bytes of the frame, including the 4 byte frame header.
	FrameLength int
}

// SyncCode is the sync code of frame headers. Bit representation:
// 11111111111.
const SyncCode = 0x7FF

// Bit rates in kbit/s of MPEG-1 audio frames, indexed by layer and the 4 bit
// bit rate code of the frame header. Code 0 (free format) and code 15
// (reserved) carry no table value and are rejected during decoding.
var mpeg1BitRates = [4][16]uint32{
	LayerI:   {0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
	LayerII:  {0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
	LayerIII: {0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
}

// Bit rates in kbit/s of MPEG-2 and MPEG-2.5 audio frames, indexed by layer
// and the 4 bit bit rate code of the frame header.
var mpeg2BitRates = [4][16]uint32{
	LayerI:   {0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
	LayerII:  {0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
	LayerIII: {0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
}

// Sample rates in Hz, indexed by MPEG audio version and the 2 bit sample rate
// code of the frame header. Code 3 is reserved and rejected during decoding.
var sampleRates = [4][4]uint32{
	MPEG1:  {44100, 48000, 32000, 0},
	MPEG2:  {22050, 24000, 16000, 0},
	MPEG25: {11025, 12000, 8000, 0},
}

// Number of audio samples per frame, indexed by MPEG audio version and layer.
var mpeg1SampleCounts = [4]int{
	LayerI:   384,
	LayerII:  1152,
	LayerIII: 1152,
}

var mpeg2SampleCounts = [4]int{
	LayerI:   384,
	LayerII:  1152,
	LayerIII: 576,
}

// NewHeader decodes and returns the frame header stored in the first 4 bytes
// of buf. It returns an error if any field of the candidate header holds a
// reserved or inconsistent bit pattern; such an error signals "not a frame
// header" and callers scanning a stream recover from it by resynchronizing.
//
// Frame header format (pseudo code):
//
//	type FRAME_HEADER struct {
//	   sync_code        uint11 // 11111111111
//	   version          uint2
//	   layer            uint2
//	   no_crc           bool
//	   bit_rate_code    uint4
//	   sample_rate_code uint2
//	   padded           bool
//	   private          bool
//	   channel_mode     uint2
//	   mode_extension   uint2
//	   copyright        bool
//	   original         bool
//	   emphasis         uint2
//	}
//
// ref: http://www.mp3-tech.org/programmer/frame_header.html
func NewHeader(buf []byte) (h *Header, err error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("frame.NewHeader: header too short; expected 4 bytes, got %d", len(buf))
	}
	br := bit.NewReader(bytes.NewReader(buf[:4]))
	// sync_code:        11 bits
	// version:          2 bits
	// layer:            2 bits
	// no_crc:           1 bit
	// bit_rate_code:    4 bits
	// sample_rate_code: 2 bits
	// padded:           1 bit
	// private:          1 bit
	// channel_mode:     2 bits
	// mode_extension:   2 bits
	// copyright:        1 bit
	// original:         1 bit
	// emphasis:         2 bits
	fields, err := br.ReadFields(11, 2, 2, 1, 4, 2, 1, 1, 2, 2, 1, 1, 2)
	if err != nil {
		return nil, err
	}

	// Sync code.
	if fields[0] != SyncCode {
		return nil, fmt.Errorf("frame.NewHeader: invalid sync code; expected '%011b', got '%011b'", SyncCode, fields[0])
	}

	// MPEG audio version.
	//    00: MPEG Version 2.5
	//    01: reserved
	//    10: MPEG Version 2
	//    11: MPEG Version 1
	h = new(Header)
	h.Version = Version(fields[1])
	if h.Version == versionReserved {
		return nil, fmt.Errorf("frame.NewHeader: invalid MPEG version; reserved bit pattern: %02b", fields[1])
	}

	// MPEG audio layer.
	//    00: reserved
	//    01: Layer III
	//    10: Layer II
	//    11: Layer I
	h.Layer = Layer(fields[2])
	if h.Layer == layerReserved {
		return nil, fmt.Errorf("frame.NewHeader: invalid MPEG layer; reserved bit pattern: %02b", fields[2])
	}

	// CRC protection; the bit is cleared when a CRC follows the header.
	h.CRCProtected = fields[3] == 0

	// Bit rate.
	//    0000: free format
	//    1111: reserved
	bitRateCode := fields[4]
	if bitRateCode == 0 || bitRateCode == 15 {
		return nil, fmt.Errorf("frame.NewHeader: invalid bit rate code: %04b", bitRateCode)
	}
	if h.Version == MPEG1 {
		h.BitRate = mpeg1BitRates[h.Layer][bitRateCode] * 1000
	} else {
		h.BitRate = mpeg2BitRates[h.Layer][bitRateCode] * 1000
	}

	// Sample rate.
	//    11: reserved
	sampleRateCode := fields[5]
	if sampleRateCode == 3 {
		return nil, fmt.Errorf("frame.NewHeader: invalid sample rate code: %02b", sampleRateCode)
	}
	h.SampleRate = sampleRates[h.Version][sampleRateCode]

	// Padding bit and private bit.
	h.Padded = fields[6] != 0
	h.Private = fields[7] != 0

	// Channel mode.
	//    00: stereo
	//    01: joint stereo
	//    10: dual channel
	//    11: mono
	h.ChannelMode = ChannelMode(fields[8])

	// Mode extension; only meaningful in joint stereo mode.
	h.ModeExtension = uint8(fields[9])
	if h.ChannelMode != JointStereo && h.ModeExtension != 0 {
		return nil, fmt.Errorf("frame.NewHeader: invalid mode extension; non-zero bit pattern %02b in %v mode", fields[9], h.ChannelMode)
	}

	// Copyright bit and original bit.
	h.Copyright = fields[10] != 0
	h.Original = fields[11] != 0

	// Emphasis.
	//    10: reserved
	h.Emphasis = Emphasis(fields[12])
	if h.Emphasis == emphasisReserved {
		return nil, fmt.Errorf("frame.NewHeader: invalid emphasis; reserved bit pattern: %02b", fields[12])
	}

	// Number of audio samples contained in the frame.
	if h.Version == MPEG1 {
		h.SampleCount = mpeg1SampleCounts[h.Layer]
	} else {
		h.SampleCount = mpeg2SampleCounts[h.Layer]
	}

	// If the padding bit is set the frame contains one extra slot. A layer I
	// slot is 4 bytes long; layer II and layer III slots are 1 byte long.
	var padding int
	if h.Padded {
		if h.Layer == LayerI {
			padding = 4
		} else {
			padding = 1
		}
	}

	// Length in bytes of the frame, including the 4 byte frame header.
	//
	//    frame_length = sample_count/8 * bit_rate/sample_rate + padding
	//
	// The integer division sample_count/8 is performed before multiplying by
	// the bit rate; reordering the operations changes the result through
	// truncation.
	h.FrameLength = (h.SampleCount/8)*int(h.BitRate)/int(h.SampleRate) + padding

	return h, nil
}

// Bytes encodes the frame header and returns its 4 byte binary
// representation. It is the inverse of NewHeader.
func (h *Header) Bytes() ([]byte, error) {
	bitRateCode, err := h.bitRateCode()
	if err != nil {
		return nil, errutil.Err(err)
	}
	sampleRateCode, err := h.sampleRateCode()
	if err != nil {
		return nil, errutil.Err(err)
	}
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	if err := bw.WriteBits(SyncCode, 11); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBits(uint64(h.Version), 2); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBits(uint64(h.Layer), 2); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBool(!h.CRCProtected); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBits(bitRateCode, 4); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBits(sampleRateCode, 2); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBool(h.Padded); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBool(h.Private); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBits(uint64(h.ChannelMode), 2); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBits(uint64(h.ModeExtension), 2); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBool(h.Copyright); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBool(h.Original); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.WriteBits(uint64(h.Emphasis), 2); err != nil {
		return nil, errutil.Err(err)
	}
	if err := bw.Close(); err != nil {
		return nil, errutil.Err(err)
	}
	return buf.Bytes(), nil
}

// bitRateCode returns the 4 bit bit rate code corresponding to the bit rate,
// MPEG audio version and layer of the frame header.
func (h *Header) bitRateCode() (uint64, error) {
	table := &mpeg2BitRates
	if h.Version == MPEG1 {
		table = &mpeg1BitRates
	}
	for code := 1; code < 15; code++ {
		if table[h.Layer][code]*1000 == h.BitRate {
			return uint64(code), nil
		}
	}
	return 0, fmt.Errorf("frame.Header.bitRateCode: invalid bit rate %d for %v %v", h.BitRate, h.Version, h.Layer)
}

// sampleRateCode returns the 2 bit sample rate code corresponding to the
// sample rate and MPEG audio version of the frame header.
func (h *Header) sampleRateCode() (uint64, error) {
	for code := 0; code < 3; code++ {
		if sampleRates[h.Version][code] == h.SampleRate {
			return uint64(code), nil
		}
	}
	return 0, fmt.Errorf("frame.Header.sampleRateCode: invalid sample rate %d for %v", h.SampleRate, h.Version)
}
