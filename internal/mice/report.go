// Package mice reads and decodes PS/2-compatible movement reports from a
// raw mouse device node such as /dev/input/mice.
package mice

// Report sizes negotiated with the device. Legacy PS/2 streams carry 3-byte
// reports; after the ImPS/2 mode switch the device appends a wheel byte.
const (
	ReportSizeLegacy = 3
	ReportSizeImPS2  = 4
)

// Report is one decoded movement/button report.
type Report struct {
	// Button states from byte 0: bit 0=Left, 1=Right, 2=Middle
	Left, Right, Middle bool
	// Sign and overflow flags from byte 0 bits 4-7. The protocol sets
	// these for the 9-bit motion encoding; this tool reads X/Y as plain
	// signed bytes and never consumes the flags, but they are decoded so
	// traces show the full packet.
	XSign, YSign         bool
	XOverflow, YOverflow bool
	// Relative motion, two's-complement signed bytes.
	X, Y int8
	// Wheel delta; 0 in legacy 3-byte mode.
	Z int8
}

// DecodeReport decodes a raw report of exactly size bytes.
//
// Report layout:
//
//	Byte 0: bit 0=Left, 1=Right, 2=Middle, bit 3=reserved (always 1 on
//	        real hardware), bit 4=X sign, 5=Y sign, 6=X overflow, 7=Y overflow
//	Byte 1: X delta (int8)
//	Byte 2: Y delta (int8)
//	Byte 3: Z (wheel) delta (int8), ImPS/2 mode only
//
// Decoding is by explicit mask and shift; the wire layout is fixed by the
// hardware protocol and must not go through a struct overlay.
//
// A buffer shorter than size is not a decodable packet: the device emits
// single-byte acknowledges (0xFA) after mode-switch commands, and those are
// dropped rather than treated as errors. DecodeReport reports ok=false and
// the caller skips the chunk.
func DecodeReport(buf []byte, size int) (Report, bool) {
	if len(buf) != size {
		return Report{}, false
	}
	r := Report{
		Left:      buf[0]&0x01 != 0,
		Right:     buf[0]&0x02 != 0,
		Middle:    buf[0]&0x04 != 0,
		XSign:     buf[0]&0x10 != 0,
		YSign:     buf[0]&0x20 != 0,
		XOverflow: buf[0]&0x40 != 0,
		YOverflow: buf[0]&0x80 != 0,
		X:         int8(buf[1]),
		Y:         int8(buf[2]),
	}
	if size >= ReportSizeImPS2 {
		r.Z = int8(buf[3])
	}
	return r, true
}
