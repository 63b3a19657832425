// Package eeprom encodes and decodes the 113-byte cartridge EEPROM image.
//
// Typical structure on the chip:
//
//	offset : len
//	0x00   : 0x08 - canister serial number (double)
//	0x08   : 0x08 - material id (double)
//	0x10   : 0x14 - manufacturing lot (string)
//	0x24   : 0x02 - version
//	0x28   : 0x08 - manufacturing date
//	0x30   : 0x08 - last use date
//	0x38   : 0x08 - initial material quantity (double)
//	0x40   : 0x02 - plain content checksum
//	0x46   : 0x02 - crypted content checksum
//	0x48   : 0x08 - key fragment (never encrypted)
//	0x50   : 0x02 - key fragment checksum
//	0x58   : 0x08 - current material quantity (double)
//	0x60   : 0x02 - crypted current material quantity checksum
//	0x62   : 0x02 - current material quantity checksum
//	0x68   : 0x09 - signature
//
// The content region [0x00, 0x40) and the quantity region [0x58, 0x60) are
// stored encrypted with a key derived from the key fragment plus the machine
// number and EEPROM uid of the printer the cartridge is bound to.
package eeprom

import (
	"encoding/hex"

	"cartkit/eeprom/ekey"
	"cartkit/eeprom/elayout"
	"github.com/pkg/errors"
)

// IsImage reports whether bs has the exact size of an EEPROM image.
func IsImage(bs []byte) bool {
	return len(bs) == elayout.ImageSize
}

// ParseID reads an 8-byte identifier (machine number or EEPROM uid) from its
// 16-hex-character form.
func ParseID(value string) ([8]byte, error) {
	id := [8]byte{}
	bs, err := hex.DecodeString(value)
	if err != nil {
		return id, errors.Wrapf(err, `ParseID error decoding "%s"`, value)
	}
	if len(bs) != len(id) {
		return id, errors.Errorf(`ParseID error: expected %d bytes, got %d from "%s"`, len(id), len(bs), value)
	}
	copy(id[:], bs)
	return id, nil
}

func deriveKey(image []byte, machineNumber, deviceUID [8]byte) [ekey.Size]byte {
	fragment := [8]byte{}
	copy(fragment[:], image[elayout.FieldKeyFragment.Offset:])
	return ekey.Derive(fragment, machineNumber, deviceUID)
}
