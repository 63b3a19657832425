// Package ecrc is the checksum port of the codec: a pure function from bytes
// to the 16-bit value stored in the image's integrity slots.
package ecrc

// polynom is the reflected form of 0x8005.
const polynom = 0xA001

// Checksum computes the CRC-16 over bs with a zero initial value.
func Checksum(bs []byte) uint16 {
	crc := uint16(0)
	for _, b := range bs {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ polynom
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
