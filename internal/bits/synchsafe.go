// Package bits provides bit-level encodings used by MP3 metadata.
package bits

// DecodeSynchsafe decodes the synchsafe integer stored in the first four bytes
// of buf and returns it. Synchsafe integers store 7 usable bits per byte,
// most significant byte first, keeping the top bit of every byte clear so that
// tag size fields can never mimic a frame sync sequence.
//
// Examples of synchsafe coded bytes on the left and decoded values on the
// right:
//
//	00 00 00 7F => 127
//	00 00 01 00 => 128
//	00 00 01 01 => 129
//	0F 7F 7F 7F => 33554431
func DecodeSynchsafe(buf []byte) uint32 {
	return uint32(buf[0]&0x7F)<<21 | uint32(buf[1]&0x7F)<<14 | uint32(buf[2]&0x7F)<<7 | uint32(buf[3]&0x7F)
}

// EncodeSynchsafe encodes x as a 4 byte synchsafe integer, using the low 7
// bits of each byte, most significant byte first. The max value of a 4 byte
// synchsafe integer is 2^28 - 1; higher bits of x are discarded.
func EncodeSynchsafe(x uint32) [4]byte {
	return [4]byte{
		byte(x >> 21 & 0x7F),
		byte(x >> 14 & 0x7F),
		byte(x >> 7 & 0x7F),
		byte(x & 0x7F),
	}
}
