// Package ebuf holds the little-endian accessors shared by every layer that
// touches the raw image bytes. All multi-byte numerics on the EEPROM are
// little-endian, and fixed-width strings are NUL-padded.
package ebuf

import (
	"encoding/binary"
	"math"
	"strings"
)

func GetUint16(bs []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(bs[offset:])
}

func PutUint16(bs []byte, offset int, value uint16) {
	binary.LittleEndian.PutUint16(bs[offset:], value)
}

func GetFloat64(bs []byte, offset int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(bs[offset:]))
}

func PutFloat64(bs []byte, offset int, value float64) {
	binary.LittleEndian.PutUint64(bs[offset:], math.Float64bits(value))
}

func GetBytes(bs []byte, offset int, width int) []byte {
	result := make([]byte, width)
	copy(result, bs[offset:offset+width])
	return result
}

func PutBytes(bs []byte, offset int, values []byte) {
	copy(bs[offset:], values)
}

// GetString reads a fixed-width string field up to its first zero byte,
// which is how strings are laid out on the EEPROM.
func GetString(bs []byte, offset int, width int) string {
	value := string(bs[offset : offset+width])
	if i := strings.IndexByte(value, 0); i >= 0 {
		value = value[:i]
	}
	return value
}
